package helpers

import (
	"fmt"
	"net/url"
)

const (
	avatarBaseURL         = "https://api.dicebear.com/7.x/initials/svg"
	avatarBackgroundColor = "b6e3f4,c0aede,d1d4f9,ffd5dc,ffdfbf"
)

// DefaultAvatarURL builds a deterministic avatar image URL from a seed
// string. No network call is made; the image service renders on fetch.
func DefaultAvatarURL(seed string) string {
	return fmt.Sprintf("%s?seed=%s&backgroundColor=%s",
		avatarBaseURL, url.QueryEscape(seed), avatarBackgroundColor)
}

// AvatarURL resolves the avatar for a student record. An explicitly uploaded
// image wins; otherwise the id seeds the generated URL, falling back to the
// name when the id is empty.
func AvatarURL(uploadedURL, id, name string) string {
	if uploadedURL != "" {
		return uploadedURL
	}
	seed := id
	if seed == "" {
		seed = name
	}
	return DefaultAvatarURL(seed)
}
