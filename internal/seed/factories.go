// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db}
}

// CreateUser constructs and persists a sample user with its profile.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username:     gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:        gofakeit.Email(),
		PasswordHash: string(hashedPassword),
		Profile: &models.Profile{
			FirstName:  gofakeit.FirstName(),
			LastName:   gofakeit.LastName(),
			Bio:        gofakeit.Sentence(10),
			ProfilePic: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		},
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePostType persists a post type with the given name, ignoring duplicates.
func (f *Factory) CreatePostType(name string) (*models.PostType, error) {
	var existing models.PostType
	if err := f.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return &existing, nil
	}
	postType := &models.PostType{Name: name}
	if err := f.db.Create(postType).Error; err != nil {
		return nil, err
	}
	return postType, nil
}

// CreatePost constructs and persists a sample post owned by the given user.
func (f *Factory) CreatePost(user *models.User, postType string, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		CreatorID: user.ID,
		Title:     gofakeit.Sentence(3),
		Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
		Tags:      fmt.Sprintf("%s,%s", gofakeit.Word(), gofakeit.Word()),
		PostType:  postType,
	}

	if postType != models.PostTypeText {
		url := gofakeit.URL()
		post.URL = &url
	}

	// realistic publication spread
	daysBack := rand.Intn(90)
	hoursBack := rand.Intn(24)
	post.PubDate = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateConnection persists a connection between two users.
func (f *Factory) CreateConnection(sender, receiver *models.User, accepted bool) (*models.Connection, error) {
	conn := &models.Connection{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Accepted:   accepted,
	}
	if err := f.db.Create(conn).Error; err != nil {
		return nil, err
	}
	return conn, nil
}

// CreateNotification persists a notification addressed to the given user.
func (f *Factory) CreateNotification(user *models.User, msg string) (*models.Notification, error) {
	notif := &models.Notification{
		UserID: user.ID,
		Msg:    msg,
	}
	if err := f.db.Create(notif).Error; err != nil {
		return nil, err
	}
	return notif, nil
}
