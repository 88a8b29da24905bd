package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/app"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tokenAuth отдаёт один и тот же токен для всех запросов
type tokenAuth struct {
	token string
}

func (a tokenAuth) Bearer(context.Context) (string, bool) {
	return a.token, a.token != ""
}

type account struct {
	email    string
	password string
	role     model.Role
	client   *api.Client
}

func main() {
	owners := flag.Int("owners", 3, "number of owners to create")
	students := flag.Int("students", 10, "number of students to create")
	flag.Parse()

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		log.Fatal("API_BASE_URL is required")
	}

	logger := app.NewLogger("development", "info")
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	gofakeit.Seed(time.Now().UnixNano())

	var posts []*model.Post
	for i := 0; i < *owners; i++ {
		acc, err := signUp(ctx, baseURL, model.RoleOwner, logger)
		if err != nil {
			log.Fatalf("seed owner: %v", err)
		}
		created, err := seedListings(ctx, acc)
		if err != nil {
			log.Fatalf("seed listings: %v", err)
		}
		posts = append(posts, created...)
		fmt.Printf("owner   %s / %s (%d posts)\n", acc.email, acc.password, len(created))
	}

	for i := 0; i < *students; i++ {
		acc, err := signUp(ctx, baseURL, model.RoleStudent, logger)
		if err != nil {
			log.Fatalf("seed student: %v", err)
		}

		interested := 0
		if len(posts) > 0 {
			post := posts[gofakeit.Number(0, len(posts)-1)]
			if _, err := acc.client.CreateInterest(ctx, post.Key()); err != nil {
				logger.Warn("Failed to create interest", zap.String("email", acc.email), zap.Error(err))
			} else {
				interested++
			}
		}
		fmt.Printf("student %s / %s (%d requests)\n", acc.email, acc.password, interested)
	}

	log.Println("seed complete")
}

// signUp регистрирует пользователя и возвращает клиент с его токеном
func signUp(ctx context.Context, baseURL string, role model.Role, logger *zap.Logger) (*account, error) {
	cfg := api.Config{BaseURL: baseURL, Timeout: 15 * time.Second, Retries: 2}
	public := api.NewClient(cfg, tokenAuth{}, logger)

	acc := &account{
		email:    fmt.Sprintf("%s.%s@example.com", gofakeit.Username(), uuid.NewString()[:8]),
		password: gofakeit.Password(true, true, true, false, false, 12),
		role:     role,
	}

	err := public.Register(ctx, api.RegisterRequest{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     acc.email,
		Password:  acc.password,
		UserType:  role.UserType(),
	})
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", acc.email, err)
	}

	token, err := public.Login(ctx, acc.email, acc.password)
	if err != nil {
		return nil, fmt.Errorf("login %s: %w", acc.email, err)
	}

	acc.client = api.NewClient(cfg, tokenAuth{token: token}, logger)
	return acc, nil
}

// seedListings создаёт владельцу комнаты и объявления к ним
func seedListings(ctx context.Context, acc *account) ([]*model.Post, error) {
	amenities := []string{"WiFi", "Lavadora", "Aire acondicionado", "Agua caliente", "Parqueo", "Escritorio"}

	var posts []*model.Post
	rooms := gofakeit.Number(1, 3)
	for i := 0; i < rooms; i++ {
		room, err := acc.client.CreateRoom(ctx, &model.Room{
			Description:   fmt.Sprintf("Habitación %s cerca de %s, ideal para estudiantes", gofakeit.Color(), gofakeit.Street()),
			Address:       gofakeit.Street() + ", " + gofakeit.City(),
			Available:     true,
			SquareFootage: float64(gofakeit.Number(8, 40)),
			BathroomType:  model.BathroomTypes[gofakeit.Number(0, len(model.BathroomTypes)-1)],
			KitchenType:   model.KitchenTypes[gofakeit.Number(0, len(model.KitchenTypes)-1)],
			IsFurnished:   gofakeit.Bool(),
			Amenities:     pick(amenities, 3),
		})
		if err != nil {
			return nil, fmt.Errorf("create room: %w", err)
		}

		post, err := acc.client.CreatePost(ctx, api.PostInput{
			Title:            "Habitación en " + gofakeit.City(),
			Price:            float64(gofakeit.Number(80, 400)),
			SecurityDeposit:  float64(gofakeit.Number(0, 200)),
			Status:           model.PostStatusAvailable,
			RoomID:           room.Key(),
			MinimumLeaseTerm: fmt.Sprintf("%d meses", gofakeit.Number(1, 6)),
			MaximumLeaseTerm: fmt.Sprintf("%d meses", gofakeit.Number(6, 12)),
		}, nil)
		if err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func pick(values []string, n int) []string {
	shuffled := append([]string(nil), values...)
	gofakeit.ShuffleStrings(shuffled)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
