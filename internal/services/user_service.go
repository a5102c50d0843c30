package services

import (
	"context"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/foliohive/server/internal/apperror"
	"github.com/foliohive/server/internal/helpers"
	"github.com/foliohive/server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	userRepo models.UserRepo
	cld      *cloudinary.Cloudinary
}

func NewUserService(userRepo models.UserRepo, cld *cloudinary.Cloudinary) *UserService {
	return &UserService{
		userRepo: userRepo,
		cld:      cld,
	}
}

// GetProfile returns the user with display defaults filled in, so clients
// never render empty profile sections.
func (us *UserService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := us.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Location == "" {
		user.Location = "Not specified"
	}
	if user.Bio == "" {
		user.Bio = "No bio yet."
	}
	if user.ProfilePicture == "" {
		user.ProfilePicture = helpers.RandomProfilePicture()
	}
	return user, nil
}

// UpdateProfile applies the allow-listed fields from input. A data-URI
// profile picture is uploaded to Cloudinary first and replaced with the
// hosted URL.
func (us *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, input *models.ProfileUpdate) (*models.User, error) {
	update := bson.M{}

	setString := func(key string, value *string) {
		if value != nil {
			update[key] = strings.TrimSpace(*value)
		}
	}
	setString("name", input.Name)
	setString("location", input.Location)
	setString("bio", input.Bio)
	setString("website", input.Website)
	setString("github", input.GitHub)
	setString("twitter", input.Twitter)
	setString("linkedin", input.LinkedIn)

	if input.Skills != nil {
		update["skills"] = *input.Skills
	}
	if input.Experience != nil {
		update["experience"] = *input.Experience
	}
	if input.Education != nil {
		update["education"] = *input.Education
	}

	if input.ProfilePicture != nil {
		picture := strings.TrimSpace(*input.ProfilePicture)
		if strings.HasPrefix(picture, "data:") {
			uploaded, err := helpers.UploadAvatar(ctx, us.cld, picture)
			if err != nil {
				return nil, apperror.Upstream("failed to upload profile picture")
			}
			picture = uploaded
		}
		update["profilePicture"] = picture
	}

	if name, ok := update["name"]; ok && name == "" {
		return nil, apperror.ValidationFailed("name", "name cannot be empty")
	}
	if len(update) == 0 {
		return nil, apperror.ValidationFailed("", "no fields to update")
	}

	return us.userRepo.UpdateProfile(ctx, id, update)
}
