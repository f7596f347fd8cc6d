package seed

import (
	"fmt"
	"log"
	"math/rand"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var defaultPostTypes = []string{models.PostTypeText, "image", "link", "video"}

// Seeder populates the database with demo users, posts, and connection mesh.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Table order respects foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"notifications", "posts", "connections",
		"revoked_tokens", "profiles", "post_types", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Database cleared")
	return nil
}

// Run seeds post types, users, a follow mesh, and posts.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	for _, name := range defaultPostTypes {
		if _, err := s.factory.CreatePostType(name); err != nil {
			return fmt.Errorf("creating post type %q: %w", name, err)
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	// Follow mesh: each user sends a handful of requests, most accepted.
	connections := 0
	for _, sender := range users {
		for n := 0; n < 3 && len(users) > 1; n++ {
			receiver := users[rand.Intn(len(users))]
			if receiver.ID == sender.ID {
				continue
			}
			var existing models.Connection
			err := s.db.Where(
				"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				sender.ID, receiver.ID, receiver.ID, sender.ID,
			).First(&existing).Error
			if err == nil {
				continue
			}
			accepted := rand.Intn(100) < 80
			if _, err := s.factory.CreateConnection(sender, receiver, accepted); err != nil {
				return fmt.Errorf("creating connection: %w", err)
			}
			if !accepted {
				msg := fmt.Sprintf("You have a new follow request from %s", sender.Username)
				if _, err := s.factory.CreateNotification(receiver, msg); err != nil {
					return fmt.Errorf("creating notification: %w", err)
				}
			}
			connections++
		}
	}
	log.Printf("Created %d connections", connections)

	for i := 0; i < opts.NumPosts; i++ {
		creator := users[rand.Intn(len(users))]
		postType := defaultPostTypes[rand.Intn(len(defaultPostTypes))]
		if _, err := s.factory.CreatePost(creator, postType); err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
	}
	log.Printf("Created %d posts", opts.NumPosts)

	return nil
}
