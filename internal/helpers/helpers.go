package helpers

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"golang.org/x/crypto/bcrypt"
)

const (
	AvatarFolder = "avatars"

	// DefaultHashCost matches the original deployment's bcrypt work factor.
	DefaultHashCost = 12
)

// Placeholder pictures assigned at registration until the user uploads one.
var demoProfilePictures = []string{
	"/images/avatar1.jpg",
	"/images/avatar2.jpg",
	"/images/avatar3.png",
}

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`\d`).MatchString(password)
	hasSpecial := regexp.MustCompile(`[@$!%*?&]`).MatchString(password)
	return hasLower && hasUpper && hasNumber && hasSpecial
}

func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, DefaultHashCost)
}

// HashPasswordWithCost exists so tests can use a low cost; production code
// goes through HashPassword.
func HashPasswordWithCost(password string, cost int) (string, error) {
	if len(password) > 72 {
		// bcrypt silently truncates beyond 72 bytes
		return "", fmt.Errorf("password must be 72 bytes or fewer")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %v", err)
	}
	return string(hashed), nil
}

func ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Slugify turns a project name into a URL path segment: lowercase, runs of
// non-alphanumeric characters collapsed to single dashes, no leading or
// trailing dash. Uniqueness suffixes are the caller's concern.
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		if (unicode.IsLetter(r) && r < unicode.MaxASCII) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateProjectID builds the external project identifier: "P" followed by
// the millisecond timestamp in base36 and five random base36 characters,
// uppercased.
func GenerateProjectID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}
	return strings.ToUpper("P" + ts + string(suffix))
}

func RandomProfilePicture() string {
	return demoProfilePictures[rand.IntN(len(demoProfilePictures))]
}

// UploadAvatar pushes a data-URI (or remote URL) image to Cloudinary and
// returns the hosted secure URL.
func UploadAvatar(ctx context.Context, cld *cloudinary.Cloudinary, imageData string) (string, error) {
	if strings.TrimSpace(imageData) == "" {
		return "", fmt.Errorf("no image data provided")
	}

	result, err := cld.Upload.Upload(ctx, imageData, uploader.UploadParams{
		Folder: AvatarFolder,
		Tags:   []string{"foliohive"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %v", err)
	}
	return result.SecureURL, nil
}
