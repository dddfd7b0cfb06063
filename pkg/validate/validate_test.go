package validate_test

import (
	"testing"

	"github.com/tanakrit/pawmart/pkg/validate"
)

type registerInput struct {
	Username             string  `json:"username"              validate:"required,min=3,max=50"`
	Email                string  `json:"email"                 validate:"required,email"`
	Password             string  `json:"password"              validate:"required,min=8,confirmed"`
	PasswordConfirmation string  `json:"password_confirmation" validate:"required"`
	Role                 string  `json:"role"                  validate:"nullable,in=customer,seller"`
	Price                float64 `json:"price"                 validate:"required,gt=0"`
	Quantity             int     `json:"quantity"              validate:"required,gte=1"`
	PickupDate           string  `json:"pickup_date"           validate:"nullable,date"`
}

func valid() registerInput {
	return registerInput{
		Username:             "jane",
		Email:                "jane@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Role:                 "customer",
		Price:                9.5,
		Quantity:             2,
		PickupDate:           "2026-03-01",
	}
}

func TestValidInput(t *testing.T) {
	if errs := validate.Struct(valid()); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected errors for empty input")
	}
	if _, ok := errs["username"]; !ok {
		t.Errorf("expected username error, got %v", errs)
	}
}

func TestEmail(t *testing.T) {
	in := valid()
	in.Email = "not-an-email"
	errs := validate.Struct(in)
	if _, ok := errs["email"]; !ok {
		t.Errorf("expected email error, got %v", errs)
	}
}

func TestConfirmedMismatch(t *testing.T) {
	in := valid()
	in.PasswordConfirmation = "different1"
	errs := validate.Struct(in)
	if _, ok := errs["password"]; !ok {
		t.Errorf("expected password confirmation error, got %v", errs)
	}
}

func TestInListWithCommas(t *testing.T) {
	in := valid()
	in.Role = "seller"
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		t.Errorf("seller should be allowed: %v", errs)
	}

	in.Role = "admin"
	errs := validate.Struct(in)
	if _, ok := errs["role"]; !ok {
		t.Errorf("admin should be rejected, got %v", errs)
	}
}

func TestNullableSkips(t *testing.T) {
	in := valid()
	in.Role = ""
	in.PickupDate = ""
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		t.Errorf("empty nullable fields should pass: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	in := valid()
	in.Price = 0
	errs := validate.Struct(in)
	if _, ok := errs["price"]; !ok {
		t.Errorf("price 0 should fail gt=0, got %v", errs)
	}

	in = valid()
	in.Quantity = 0
	errs = validate.Struct(in)
	if _, ok := errs["quantity"]; !ok {
		t.Errorf("quantity 0 should fail required, got %v", errs)
	}
}

func TestDate(t *testing.T) {
	in := valid()
	in.PickupDate = "not a date"
	errs := validate.Struct(in)
	if _, ok := errs["pickup_date"]; !ok {
		t.Errorf("expected pickup_date error, got %v", errs)
	}
}

func TestMinLength(t *testing.T) {
	in := valid()
	in.Username = "ab"
	errs := validate.Struct(in)
	if _, ok := errs["username"]; !ok {
		t.Errorf("expected username min error, got %v", errs)
	}
}
