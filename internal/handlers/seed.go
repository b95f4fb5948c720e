package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

type seedProduct struct {
	name        string
	description string
	price       float64
	category    string
	stock       int
	emoji       string
}

var seedCategories = []models.Category{
	{Name: "Fruits", Emoji: "🍎", DisplayOrder: 1, IsActive: true},
	{Name: "Vegetables", Emoji: "🥕", DisplayOrder: 2, IsActive: true},
	{Name: "Dairy", Emoji: "🥛", DisplayOrder: 3, IsActive: true},
	{Name: "Bakery", Emoji: "🍞", DisplayOrder: 4, IsActive: true},
	{Name: "Meat", Emoji: "🍖", DisplayOrder: 5, IsActive: true},
	{Name: "Seafood", Emoji: "🐟", DisplayOrder: 6, IsActive: true},
	{Name: "Beverages", Emoji: "🥤", DisplayOrder: 7, IsActive: true},
	{Name: "Snacks", Emoji: "🍿", DisplayOrder: 8, IsActive: true},
}

var seedProducts = []seedProduct{
	{"Fresh Apple", "Crisp and juicy red apples, perfect for snacking or baking.", 120, "fruits", 50, "🍎"},
	{"Ripe Banana", "Sweet and creamy bananas, rich in potassium and energy.", 40, "fruits", 80, "🍌"},
	{"Juicy Orange", "Fresh oranges packed with vitamin C and natural sweetness.", 80, "fruits", 60, "🍊"},
	{"Sweet Mango", "Delicious Alphonso mangoes, the king of fruits.", 150, "fruits", 30, "🥭"},
	{"Fresh Grapes", "Seedless green grapes, sweet and refreshing.", 90, "fruits", 45, "🍇"},
	{"Watermelon", "Large, juicy watermelon perfect for summer days.", 60, "fruits", 25, "🍉"},
	{"Strawberries", "Fresh red strawberries, sweet and aromatic.", 200, "fruits", 20, "🍓"},
	{"Pineapple", "Tropical pineapple, sweet and tangy flavor.", 100, "fruits", 15, "🍍"},

	{"Fresh Tomato", "Ripe red tomatoes, perfect for salads and cooking.", 30, "vegetables", 100, "🍅"},
	{"Organic Carrot", "Crunchy orange carrots, rich in beta-carotene.", 50, "vegetables", 70, "🥕"},
	{"Fresh Potato", "Versatile potatoes for all your cooking needs.", 25, "vegetables", 120, "🥔"},
	{"White Onion", "Fresh onions, essential for every kitchen.", 35, "vegetables", 90, "🧅"},
	{"Green Broccoli", "Nutritious broccoli florets, packed with vitamins.", 80, "vegetables", 40, "🥦"},
	{"Bell Pepper", "Colorful bell peppers, crisp and sweet.", 60, "vegetables", 55, "🫑"},
	{"Cucumber", "Fresh cucumbers, perfect for salads and snacks.", 40, "vegetables", 65, "🥒"},
	{"Spinach", "Fresh green spinach leaves, rich in iron.", 30, "vegetables", 50, "🥬"},

	{"Fresh Milk", "Pure cow's milk, 1 liter pack, homogenized and pasteurized.", 60, "dairy", 80, "🥛"},
	{"Cheddar Cheese", "Premium cheddar cheese, perfect for sandwiches and cooking.", 250, "dairy", 40, "🧀"},
	{"Greek Yogurt", "Creamy Greek yogurt, high in protein and probiotics.", 80, "dairy", 60, "🥛"},
	{"Butter", "Salted butter, ideal for cooking and baking.", 120, "dairy", 50, "🧈"},
	{"Fresh Paneer", "Soft cottage cheese, perfect for Indian dishes.", 180, "dairy", 35, "🧈"},
	{"Ice Cream", "Vanilla ice cream, creamy and delicious.", 150, "dairy", 45, "🍦"},

	{"White Bread", "Fresh white bread loaf, soft and perfect for sandwiches.", 40, "bakery", 60, "🍞"},
	{"Butter Croissant", "Flaky French croissant, buttery and delicious.", 50, "bakery", 40, "🥐"},
	{"Sesame Bagel", "Fresh bagels with sesame seeds, perfect for breakfast.", 45, "bakery", 35, "🥯"},
	{"Blueberry Muffin", "Moist blueberry muffins, freshly baked.", 60, "bakery", 30, "🧁"},
	{"Chocolate Cake", "Rich chocolate cake, perfect for celebrations.", 400, "bakery", 15, "🍰"},
	{"Whole Wheat Bread", "Healthy whole wheat bread, high in fiber.", 50, "bakery", 50, "🍞"},
	{"Danish Pastry", "Sweet Danish pastry with fruit filling.", 70, "bakery", 25, "🥐"},

	{"Chicken Breast", "Boneless chicken breast, fresh and tender.", 280, "meat", 50, "🍗"},
	{"Beef Steak", "Premium beef steak, perfectly marbled.", 500, "meat", 30, "🥩"},
	{"Lamb Chops", "Tender lamb chops, ideal for grilling.", 600, "meat", 20, "🍖"},
	{"Pork Ribs", "Juicy pork ribs, perfect for BBQ.", 450, "meat", 25, "🥩"},
	{"Turkey Breast", "Lean turkey breast, healthy and delicious.", 350, "meat", 35, "🍗"},
	{"Ground Beef", "Fresh ground beef for burgers and meatballs.", 300, "meat", 40, "🥩"},

	{"Fresh Salmon", "Atlantic salmon fillet, rich in omega-3.", 600, "seafood", 25, "🐟"},
	{"Jumbo Shrimp", "Large shrimp, cleaned and deveined.", 500, "seafood", 30, "🦐"},
	{"Tuna Steak", "Fresh tuna steak, perfect for grilling.", 550, "seafood", 20, "🐟"},
	{"Crab Meat", "Fresh crab meat, sweet and succulent.", 700, "seafood", 15, "🦀"},
	{"Lobster Tail", "Premium lobster tail, a true delicacy.", 1200, "seafood", 10, "🦞"},
	{"Sea Bass", "Fresh sea bass fillet, mild and flaky.", 650, "seafood", 18, "🐟"},

	{"Fresh Coffee", "Premium roasted coffee beans, 250g pack.", 200, "beverages", 40, "☕"},
	{"Green Tea", "Organic green tea leaves, antioxidant-rich.", 150, "beverages", 50, "🍵"},
	{"Orange Juice", "Fresh-squeezed orange juice, 1 liter pack.", 100, "beverages", 60, "🧃"},
	{"Cola Soda", "Classic cola soda, 2 liter bottle.", 80, "beverages", 70, "🥤"},
	{"Mineral Water", "Pure mineral water, 1 liter bottle.", 20, "beverages", 100, "💧"},
	{"Energy Drink", "Energy drink with vitamins and caffeine.", 90, "beverages", 45, "🥤"},
	{"Smoothie", "Mixed fruit smoothie, healthy and refreshing.", 120, "beverages", 35, "🧃"},

	{"Potato Chips", "Crispy potato chips, classic salted flavor.", 30, "snacks", 80, "🥔"},
	{"Chocolate Cookies", "Delicious chocolate chip cookies, freshly baked.", 60, "snacks", 50, "🍪"},
	{"Buttered Popcorn", "Movie-style buttered popcorn, ready to eat.", 50, "snacks", 60, "🍿"},
	{"Mixed Nuts", "Premium mixed nuts, roasted and salted.", 150, "snacks", 40, "🥜"},
	{"Gummy Candy", "Colorful gummy candies, fruity flavors.", 40, "snacks", 70, "🍬"},
	{"Pretzels", "Crunchy salted pretzels, perfect snack.", 55, "snacks", 45, "🥨"},
	{"Granola Bar", "Healthy granola bar with oats and honey.", 35, "snacks", 65, "🍫"},
	{"Nachos", "Crispy corn tortilla chips, cheesy flavor.", 45, "snacks", 55, "🌮"},
}

/*
POST /admin/api/seed
- idempotent: skips any collection that already has documents
*/
func SeedCatalog(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/seed"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		categoriesSeeded, err := seedCategoriesOnce(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to seed categories")
			return
		}

		productsSeeded, err := seedProductsOnce(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to seed products")
			return
		}

		log.Printf("[SEED] [INFO] seeded %d categories, %d products", categoriesSeeded, productsSeeded)
		c.JSON(http.StatusOK, gin.H{
			"categories": categoriesSeeded,
			"products":   productsSeeded,
		})
	}
}

func seedCategoriesOnce(ctx context.Context, db *mongo.Database) (int, error) {
	coll := db.Collection("categories")

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(seedCategories))
	now := time.Now()
	for _, category := range seedCategories {
		category.CreatedAt = now
		docs = append(docs, category)
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func seedProductsOnce(ctx context.Context, db *mongo.Database) (int, error) {
	coll := db.Collection("products")

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(seedProducts))
	now := time.Now()
	for _, p := range seedProducts {
		docs = append(docs, models.Product{
			Name:          p.name,
			Description:   p.description,
			Price:         p.price,
			Category:      p.category,
			StockQuantity: p.stock,
			Emoji:         p.emoji,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}
