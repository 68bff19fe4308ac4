package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/forkful/saucier/internal/store/model"
	"github.com/forkful/saucier/internal/store/sqlite"
)

func main() {
	repo, err := sqlite.Open("saucier.db")
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	ctx := context.Background()

	password := "chef-password-123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	userID := uuid.NewString()
	user := &model.User{
		ID:           userID,
		Name:         "Demo Chef",
		Email:        "chef@example.com",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := repo.Users().Create(ctx, user); err != nil {
		log.Printf("user might already exist: %v", err)
	} else {
		fmt.Printf("Created user: %s\n", userID)
	}

	recipe := &model.Recipe{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           "Tomato Basil Pasta",
		Description:     "A quick weeknight pasta.",
		IngredientsUsed: `["tomato","basil","pasta"]`,
		Ingredients:     `[{"name":"tomato","amount":"3","unit":"whole"},{"name":"basil","amount":"1","unit":"bunch"},{"name":"pasta","amount":"250","unit":"g"}]`,
		Instructions:    `["Boil the pasta.","Simmer chopped tomatoes.","Toss with basil."]`,
		PrepTime:        10,
		CookTime:        20,
		TotalTime:       30,
		Servings:        2,
		Difficulty:      "easy",
		Cuisine:         "italian",
		NutritionInfo:   sql.NullString{},
		Tags:            `["pasta","quick"]`,
		IsSaved:         true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := repo.Recipes().Create(ctx, recipe); err != nil {
		log.Fatal(err)
	}

	fmt.Println("\nSuccessfully seeded database!")
	fmt.Printf("Login with: chef@example.com / %s\n", password)
}
