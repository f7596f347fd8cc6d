package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Patch-key allowlists for UpdateUser. A key matching neither is rejected.
var (
	userPatchFields = map[string]struct{}{
		"username": {},
		"email":    {},
	}
	profilePatchFields = map[string]struct{}{
		"first_name":  {},
		"last_name":   {},
		"bio":         {},
		"profile_pic": {},
	}
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profile_pic"`
}

// UserService provides registration, authentication, and profile management.
type UserService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(db *gorm.DB, userRepo repository.UserRepository) *UserService {
	return &UserService{db: db, userRepo: userRepo}
}

// Register creates a user and its profile in one transaction. Username and
// email collisions are checked independently; either one rejects, and the
// check spans archived accounts since identifiers are never reusable.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(input.Username); err != nil {
		return nil, models.NewInvalidArgumentError(err.Error())
	}
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, models.NewInvalidArgumentError(err.Error())
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, models.NewInvalidArgumentError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepo := repository.NewUserRepository(tx)

		existing, err := userRepo.GetByUsername(ctx, input.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return models.NewConflictError("username already taken")
		}

		existing, err = userRepo.GetByEmail(ctx, input.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return models.NewConflictError("email already taken")
		}

		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		profile := &models.Profile{
			UserID:     user.ID,
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Bio:        input.Bio,
			ProfilePic: input.ProfilePic,
		}
		return repository.NewProfileRepository(tx).Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, user.ID)
}

// Authenticate verifies a username/password pair. Missing users, archived
// users, and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Archive {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}
	return user, nil
}

// UpdateUser applies a patch to the user's account and profile records. Each
// key is routed by the allowlists above; an unknown key rejects the whole
// patch before anything is written.
func (s *UserService) UpdateUser(ctx context.Context, ownerID uuid.UUID, patch map[string]string) (*models.User, error) {
	userPatch := map[string]string{}
	profilePatch := map[string]string{}
	for k, v := range patch {
		switch {
		case hasKey(userPatchFields, k):
			userPatch[k] = v
		case hasKey(profilePatchFields, k):
			profilePatch[k] = v
		default:
			return nil, models.NewInvalidFieldError(k)
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepo := repository.NewUserRepository(tx)

		user, err := userRepo.GetByID(ctx, ownerID)
		if err != nil {
			return err
		}

		if username, ok := userPatch["username"]; ok && username != user.Username {
			if err := validation.ValidateUsername(username); err != nil {
				return models.NewInvalidArgumentError(err.Error())
			}
			taken, err := userRepo.GetByUsername(ctx, username)
			if err != nil {
				return err
			}
			if taken != nil {
				return models.NewConflictError("username already taken")
			}
			user.Username = username
		}
		if email, ok := userPatch["email"]; ok && email != user.Email {
			if err := validation.ValidateEmail(email); err != nil {
				return models.NewInvalidArgumentError(err.Error())
			}
			taken, err := userRepo.GetByEmail(ctx, email)
			if err != nil {
				return err
			}
			if taken != nil {
				return models.NewConflictError("email already taken")
			}
			user.Email = email
		}
		if err := userRepo.Save(ctx, user); err != nil {
			return err
		}

		if len(profilePatch) == 0 {
			return nil
		}

		profileRepo := repository.NewProfileRepository(tx)
		profile, err := profileRepo.GetByUserID(ctx, ownerID)
		if err != nil {
			return err
		}
		if v, ok := profilePatch["first_name"]; ok {
			profile.FirstName = v
		}
		if v, ok := profilePatch["last_name"]; ok {
			profile.LastName = v
		}
		if v, ok := profilePatch["bio"]; ok {
			profile.Bio = v
		}
		if v, ok := profilePatch["profile_pic"]; ok {
			profile.ProfilePic = v
		}
		return profileRepo.Save(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, ownerID)
}

// ChangePassword replaces the user's password after verifying the current one.
func (s *UserService) ChangePassword(ctx context.Context, user *models.User, currentPassword, newPassword string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return models.NewInvalidArgumentError("current password is incorrect")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewInvalidArgumentError(err.Error())
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Save(ctx, user)
}

// ForgotPassword stamps a fresh reset token on the account with this email
// and returns it. Delivery is the caller's concern.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (uuid.UUID, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, err
	}
	if user == nil {
		return uuid.Nil, models.NewNotFoundError("User", email)
	}
	token := uuid.New()
	user.ForgetPasswordToken = &token
	if err := s.userRepo.Save(ctx, user); err != nil {
		return uuid.Nil, err
	}
	return token, nil
}

// ResetPassword consumes a reset token and sets a new password.
func (s *UserService) ResetPassword(ctx context.Context, token uuid.UUID, newPassword string) error {
	user, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", token)
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewInvalidArgumentError(err.Error())
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.PasswordHash = string(hash)
	user.ForgetPasswordToken = nil
	return s.userRepo.Save(ctx, user)
}

func hasKey(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
