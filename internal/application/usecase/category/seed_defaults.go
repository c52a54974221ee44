// Package category contains category and subcategory use cases.
package category

import (
	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// defaultTree is the category/subcategory set every new household starts with.
var defaultTree = []struct {
	name          string
	subcategories []string
}{
	{"Housing", []string{"Rent", "Mortgage", "Condo Fees", "Electricity", "Water", "Gas", "Internet", "Home Maintenance"}},
	{"Food", []string{"Groceries", "Restaurants", "Delivery"}},
	{"Transport", []string{"Fuel", "Public Transit", "Ride Hailing", "Car Maintenance", "Insurance", "Parking"}},
	{"Health", []string{"Health Insurance", "Pharmacy", "Doctor", "Dentist", "Gym"}},
	{"Leisure & Subscriptions", []string{"Streaming", "Games", "Trips", "Events", "Hobbies"}},
	{"Education", []string{"Courses", "Books", "Tuition"}},
	{"Finance", []string{"Bank Fees", "Loan Payments", "Investments", "Taxes"}},
	{"Personal Shopping", []string{"Clothing", "Electronics", "Gifts", "Beauty"}},
}

// DefaultSeed builds the default category tree for a new household. The
// returned slices are ready for CategoryRepository.CreateBatch.
func DefaultSeed(householdID uuid.UUID) ([]*entity.Category, []*entity.Subcategory) {
	categories := make([]*entity.Category, 0, len(defaultTree))
	var subcategories []*entity.Subcategory
	for _, node := range defaultTree {
		cat := entity.NewCategory(householdID, node.name)
		categories = append(categories, cat)
		for _, name := range node.subcategories {
			subcategories = append(subcategories, entity.NewSubcategory(cat.ID, name))
		}
	}
	return categories, subcategories
}
