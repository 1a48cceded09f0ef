package models

import (
	"fmt"
	"strings"
)

// AdminForm is the shared input state of every admin operation. Only the
// fields relevant to the active operation are sent.
type AdminForm struct {
	Name        string
	Description string
	Price       string
	Stock       string
	CategoryID  string
	ImageURL    string
	ProductID   string
	UserID      string
	Username    string
	Email       string
	Role        string
	Month       string
	Year        string
	Date        string
}

// Reset clears every field; role goes back to CUSTOMER.
func (f *AdminForm) Reset() {
	*f = AdminForm{Role: string(RoleCustomer)}
}

// AdminFormFields lists the accepted field names for Set/Get.
var AdminFormFields = []string{
	"name", "description", "price", "stock", "categoryId", "imageUrl", "productId",
	"userId", "username", "email", "role", "month", "year", "date",
}

func (f *AdminForm) field(name string) (*string, error) {
	switch strings.ToLower(name) {
	case "name":
		return &f.Name, nil
	case "description":
		return &f.Description, nil
	case "price":
		return &f.Price, nil
	case "stock":
		return &f.Stock, nil
	case "categoryid":
		return &f.CategoryID, nil
	case "imageurl":
		return &f.ImageURL, nil
	case "productid":
		return &f.ProductID, nil
	case "userid":
		return &f.UserID, nil
	case "username":
		return &f.Username, nil
	case "email":
		return &f.Email, nil
	case "role":
		return &f.Role, nil
	case "month":
		return &f.Month, nil
	case "year":
		return &f.Year, nil
	case "date":
		return &f.Date, nil
	}
	return nil, fmt.Errorf("unknown form field %q", name)
}

// Set assigns value to the named field (case-insensitive).
func (f *AdminForm) Set(name, value string) error {
	p, err := f.field(name)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

func (f *AdminForm) Get(name string) (string, error) {
	p, err := f.field(name)
	if err != nil {
		return "", err
	}
	return *p, nil
}
