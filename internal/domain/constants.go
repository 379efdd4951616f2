package domain

// Durable storage keys
const (
	StoreKeyUserID       = "userId"
	StoreKeyToken        = "token"
	StoreKeyProfilePhoto = "profilePhoto" // legacy, only cleared by logout
	StoreKeyCartPrefix   = "cartItems_"
)

// CartKey namespaces a cart collection by identity.
func CartKey(userID string) string {
	return StoreKeyCartPrefix + userID
}

// Cart item rules
const (
	CartItemPrice    = 100
	CartItemQuantity = 1
	CartItemIDPrefix = "IMG_"
)

// MaxImageBytes is the largest image accepted for bulk cart adds and profile photos.
const MaxImageBytes int64 = 5_000_000

var Genders = []Gender{
	GenderMale,
	GenderFemale,
	GenderOther,
}
