package booking

import (
	"context"
	"testing"
	"time"

	catalogRepo "festoria/database/repository/catalog"
	"festoria/models"
)

type mockCatalog struct {
	getFn func(id string) (*models.ServicePackage, error)
}

func (m *mockCatalog) GetPackageByID(id string) (*models.ServicePackage, error) {
	return m.getFn(id)
}

func TestCreateBookingSnapshotsPackage(t *testing.T) {
	pkg := &models.ServicePackage{
		ID:          "pkg-1",
		ProviderID:  providerActor.ID,
		Name:        "Gold Decor",
		ServiceType: "decoration",
		Price:       500,
		Features:    []string{"setup", "teardown"},
		Active:      true,
	}

	var created *models.Booking
	repo := &mockBookingRepo{
		createFn: func(b *models.Booking) error {
			created = b
			return nil
		},
	}
	svc := testService(repo)
	svc.Catalog = &mockCatalog{getFn: func(id string) (*models.ServicePackage, error) { return pkg, nil }}

	input := CreateBookingInput{
		PackageID:     "pkg-1",
		EventDate:     time.Now().Add(30 * 24 * time.Hour),
		EventLocation: "Sunset Hall",
	}
	b, err := svc.CreateBooking(context.Background(), clientActor, input)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if created == nil {
		t.Fatal("booking was never persisted")
	}

	if b.Status != models.StatusPendingProviderConfirmation {
		t.Errorf("status = %s, want %s", b.Status, models.StatusPendingProviderConfirmation)
	}
	if b.ProviderID != pkg.ProviderID {
		t.Errorf("provider = %s, want %s", b.ProviderID, pkg.ProviderID)
	}
	if b.TotalAmount != pkg.Price {
		t.Errorf("total = %v, want package price %v", b.TotalAmount, pkg.Price)
	}
	if b.Package.Name != pkg.Name || b.Package.PackageID != pkg.ID {
		t.Errorf("package snapshot not taken: %+v", b.Package)
	}
	if b.AutoExpiryDate == nil {
		t.Fatal("new booking must carry an auto-expiry deadline")
	}
	if remaining := time.Until(*b.AutoExpiryDate); remaining < 47*time.Hour || remaining > 49*time.Hour {
		t.Errorf("auto-expiry deadline %v away, want about 48h", remaining)
	}
}

func TestCreateBookingUnknownPackage(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := testService(repo)
	svc.Catalog = &mockCatalog{getFn: func(id string) (*models.ServicePackage, error) {
		return nil, catalogRepo.ErrNotFound
	}}

	_, err := svc.CreateBooking(context.Background(), clientActor, CreateBookingInput{PackageID: "missing"})
	if !IsCode(err, CodeNotFound) {
		t.Fatalf("got %v, want NOT_FOUND", err)
	}
}
