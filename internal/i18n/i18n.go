// internal/i18n/i18n.go
package i18n

import (
	"fmt"
	"sync"
)

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

var instance *I18n
var once sync.Once

// Catalogs are compiled in so the binary has no runtime locale files to
// locate. English is the fallback for unknown languages and keys.
var catalogs = map[string]map[string]string{
	"en": {
		KeyAuthRequired:           "Authentication required",
		KeyAuthInvalidToken:       "Invalid authentication token",
		KeyAuthTokenExpired:       "Authentication token expired",
		KeyAuthInvalidCredentials: "Invalid email or password",
		KeyAuthUserExists:         "User with this email already exists",
		KeyAuthRegisterSuccess:    "Registration successful",
		KeyAccessDenied:           "Access is denied",
		KeyValidationInvalid:      "Invalid %s",
		KeyCategoryNotFound:       "Category does not exist!",
		KeyCategoryExists:         "Category with this name already exists",
		KeyProductNotFound:        "Product does not exist!",
		KeyProductCreated:         "Product created successfully",
		KeyProductUpdated:         "Product updated successfully",
		KeyProductDeleted:         "Product deleted successfully",
		KeySellerNotFound:         "Seller does not exist!",
		KeySellerApplied:          "Seller application submitted",
		KeyCartItemAdded:          "Item Added To Cart",
		KeyCartItemUpdated:        "Item Update In Cart",
		KeyCartItemRemoved:        "Item Removed From Cart",
		KeyCartEmpty:              "No Items in Cart",
		KeyCheckoutSuccess:        "Checkout Successful",
		KeyShippingNotFound:       "Shipping Address does not exist!",
		KeyShippingDeleted:        "Shipping address deleted successfully",
		KeyOrderNotFound:          "Order does not exist!",
		KeyReviewNotFound:         "Review does not exist!",
		KeyReviewExists:           "This product already has your review",
		KeyReviewDeleted:          "Review deleted successfully",
		KeyProfileUpdated:         "Profile updated successfully",
		KeyProfileDeactivated:     "User Account Deactivated",
		KeyUserNotFound:           "User does not exist!",
	},
	"ru": {
		KeyAuthRequired:           "Требуется аутентификация",
		KeyAuthInvalidToken:       "Недействительный токен",
		KeyAuthTokenExpired:       "Срок действия токена истёк",
		KeyAuthInvalidCredentials: "Неверный email или пароль",
		KeyAuthUserExists:         "Пользователь с таким email уже существует",
		KeyAuthRegisterSuccess:    "Регистрация прошла успешно",
		KeyAccessDenied:           "Доступ запрещён",
		KeyValidationInvalid:      "Недопустимое значение %s",
		KeyCategoryNotFound:       "Категория не существует!",
		KeyCategoryExists:         "Категория с таким названием уже существует",
		KeyProductNotFound:        "Товар не существует!",
		KeyProductCreated:         "Товар успешно создан",
		KeyProductUpdated:         "Товар успешно обновлён",
		KeyProductDeleted:         "Товар успешно удалён",
		KeySellerNotFound:         "Продавец не существует!",
		KeySellerApplied:          "Заявка продавца отправлена",
		KeyCartItemAdded:          "Товар добавлен в корзину",
		KeyCartItemUpdated:        "Товар обновлён в корзине",
		KeyCartItemRemoved:        "Товар удалён из корзины",
		KeyCartEmpty:              "В корзине нет товаров",
		KeyCheckoutSuccess:        "Заказ успешно оформлен",
		KeyShippingNotFound:       "Адрес доставки не существует!",
		KeyShippingDeleted:        "Адрес доставки успешно удалён",
		KeyOrderNotFound:          "Заказ не существует!",
		KeyReviewNotFound:         "Отзыв не существует!",
		KeyReviewExists:           "Вы уже оставили отзыв на этот товар",
		KeyReviewDeleted:          "Отзыв успешно удалён",
		KeyProfileUpdated:         "Профиль успешно обновлён",
		KeyProfileDeactivated:     "Аккаунт пользователя деактивирован",
		KeyUserNotFound:           "Пользователь не существует!",
	},
}

func Initialize() error {
	once.Do(func() {
		instance = &I18n{
			translations: catalogs,
			defaultLang:  "en",
		}
	})
	return nil
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	// Try to get translation for requested language
	if translations, exists := i.translations[lang]; exists {
		if text, exists := translations[key]; exists {
			if len(args) > 0 {
				return fmt.Sprintf(text, args...)
			}
			return text
		}
	}

	// Fall back to default language
	if translations, exists := i.translations[i.defaultLang]; exists {
		if text, exists := translations[key]; exists {
			if len(args) > 0 {
				return fmt.Sprintf(text, args...)
			}
			return text
		}
	}

	// Last resort: return the key itself
	return key
}

func T(lang, key string, args ...interface{}) string {
	if instance == nil {
		Initialize()
	}
	return instance.T(lang, key, args...)
}
