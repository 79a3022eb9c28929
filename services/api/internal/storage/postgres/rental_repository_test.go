package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
	"github.com/danacastroman/app-vestidos/services/api/internal/testutil"
)

var testCustomer = domain.Customer{
	Name:  "Juan Pérez",
	Email: "juan.perez@example.com",
	Phone: "+598 99 123 456",
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRentalRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewRentalRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("GetItemForUpdate returns item and ErrItemNotFound", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		itemID := testutil.InsertItem(t, ctx, pool, "Vestido Aurora", 45)

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			item, err := repo.GetItemForUpdate(txCtx, itemID)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if item.ID != itemID || item.Name != "Vestido Aurora" || item.PricePerDay != 45 {
				t.Fatalf("unexpected item: %+v", item)
			}

			if _, err := repo.GetItemForUpdate(txCtx, itemID+1000); err != domain.ErrItemNotFound {
				t.Fatalf("expected ErrItemNotFound, got %v", err)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}
	})

	t.Run("HasActiveOverlap honors half-open bounds and status", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		itemID := testutil.InsertItem(t, ctx, pool, "Vestido Brisa", 38)

		testutil.InsertRental(t, ctx, pool, itemID, domain.Rental{
			Start:    day(2025, 12, 10),
			End:      day(2025, 12, 13),
			Customer: testCustomer,
			Status:   domain.RentalStatusActive,
		})

		cases := []struct {
			name   string
			period domain.DateRange
			want   bool
		}{
			{"inside", domain.DateRange{Start: day(2025, 12, 11), End: day(2025, 12, 12)}, true},
			{"same range", domain.DateRange{Start: day(2025, 12, 10), End: day(2025, 12, 13)}, true},
			{"touching end", domain.DateRange{Start: day(2025, 12, 13), End: day(2025, 12, 16)}, false},
			{"touching start", domain.DateRange{Start: day(2025, 12, 7), End: day(2025, 12, 10)}, false},
			{"disjoint", domain.DateRange{Start: day(2025, 12, 20), End: day(2025, 12, 22)}, false},
		}
		for _, tc := range cases {
			taken, err := repo.HasActiveOverlap(ctx, itemID, tc.period)
			if err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			if taken != tc.want {
				t.Fatalf("%s: overlap = %v, want %v", tc.name, taken, tc.want)
			}
		}

		// Cancelled rentals do not count.
		cancelledItem := testutil.InsertItem(t, ctx, pool, "Vestido Flor", 30)
		testutil.InsertRental(t, ctx, pool, cancelledItem, domain.Rental{
			Start:    day(2025, 12, 10),
			End:      day(2025, 12, 13),
			Customer: testCustomer,
			Status:   domain.RentalStatusCancelled,
		})
		taken, err := repo.HasActiveOverlap(ctx, cancelledItem, domain.DateRange{Start: day(2025, 12, 11), End: day(2025, 12, 12)})
		if err != nil {
			t.Fatalf("overlap: %v", err)
		}
		if taken {
			t.Fatalf("expected cancelled rental to be ignored")
		}
	})

	t.Run("exclusion constraint backstops overlapping inserts", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		itemID := testutil.InsertItem(t, ctx, pool, "Traje Marengo", 55)

		rental := domain.Rental{
			ItemID:    itemID,
			Start:     day(2025, 12, 10),
			End:       day(2025, 12, 13),
			Customer:  testCustomer,
			Status:    domain.RentalStatusActive,
			CreatedAt: time.Now().UTC(),
		}
		created, err := repo.CreateRental(ctx, rental)
		if err != nil {
			t.Fatalf("create rental: %v", err)
		}
		if created.ID == 0 {
			t.Fatalf("expected assigned rental id")
		}

		overlapping := rental
		overlapping.Start = day(2025, 12, 11)
		overlapping.End = day(2025, 12, 12)
		if _, err := repo.CreateRental(ctx, overlapping); err != domain.ErrRangeConflict {
			t.Fatalf("expected ErrRangeConflict, got %v", err)
		}

		touching := rental
		touching.Start = day(2025, 12, 13)
		touching.End = day(2025, 12, 16)
		if _, err := repo.CreateRental(ctx, touching); err != nil {
			t.Fatalf("expected touching range to insert, got %v", err)
		}
	})

	t.Run("ListActiveRanges orders by start and skips cancelled", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		itemID := testutil.InsertItem(t, ctx, pool, "Vestido Celeste", 42)

		testutil.InsertRental(t, ctx, pool, itemID, domain.Rental{
			Start: day(2025, 12, 20), End: day(2025, 12, 22), Customer: testCustomer, Status: domain.RentalStatusActive,
		})
		testutil.InsertRental(t, ctx, pool, itemID, domain.Rental{
			Start: day(2025, 12, 1), End: day(2025, 12, 4), Customer: testCustomer, Status: domain.RentalStatusActive,
		})
		testutil.InsertRental(t, ctx, pool, itemID, domain.Rental{
			Start: day(2025, 12, 5), End: day(2025, 12, 8), Customer: testCustomer, Status: domain.RentalStatusCancelled,
		})

		ranges, err := repo.ListActiveRanges(ctx, itemID)
		if err != nil {
			t.Fatalf("list ranges: %v", err)
		}
		if len(ranges) != 2 {
			t.Fatalf("expected 2 active ranges, got %d", len(ranges))
		}
		if !ranges[0].Start.Equal(day(2025, 12, 1)) || !ranges[1].Start.Equal(day(2025, 12, 20)) {
			t.Fatalf("unexpected order: %+v", ranges)
		}

		empty, err := repo.ListActiveRanges(ctx, itemID+1000)
		if err != nil {
			t.Fatalf("list ranges for unknown item: %v", err)
		}
		if len(empty) != 0 {
			t.Fatalf("expected empty ranges for unknown item, got %d", len(empty))
		}
	})

	t.Run("cancel flow via GetRentalForUpdate and UpdateRentalStatus", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		itemID := testutil.InsertItem(t, ctx, pool, "Vestido Perla", 80)

		rentalID := testutil.InsertRental(t, ctx, pool, itemID, domain.Rental{
			Start: day(2025, 12, 10), End: day(2025, 12, 13), Customer: testCustomer, Status: domain.RentalStatusActive,
		})

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			rental, err := repo.GetRentalForUpdate(txCtx, rentalID)
			if err != nil {
				t.Fatalf("get rental: %v", err)
			}
			if rental.Status != domain.RentalStatusActive {
				t.Fatalf("expected active rental, got %s", rental.Status)
			}
			return repo.UpdateRentalStatus(txCtx, rentalID, domain.RentalStatusCancelled)
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}

		var status string
		if err := pool.QueryRow(ctx, `SELECT status FROM rentals WHERE id = $1`, rentalID).Scan(&status); err != nil {
			t.Fatalf("query status: %v", err)
		}
		if status != string(domain.RentalStatusCancelled) {
			t.Fatalf("expected cancelled, got %s", status)
		}

		if _, err := repo.GetRentalForUpdate(ctx, rentalID+1000); err != domain.ErrRentalNotFound {
			t.Fatalf("expected ErrRentalNotFound, got %v", err)
		}
	})

	t.Run("ListRentals joins item names newest first", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		itemID := testutil.InsertItem(t, ctx, pool, "Capa Noche", 25)

		testutil.InsertRental(t, ctx, pool, itemID, domain.Rental{
			Start: day(2025, 12, 1), End: day(2025, 12, 3), Customer: testCustomer, Status: domain.RentalStatusActive,
		})
		testutil.InsertRental(t, ctx, pool, itemID, domain.Rental{
			Start: day(2025, 12, 5), End: day(2025, 12, 7), Customer: testCustomer, Status: domain.RentalStatusActive,
		})

		summaries, err := repo.ListRentals(ctx)
		if err != nil {
			t.Fatalf("list rentals: %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("expected 2 rentals, got %d", len(summaries))
		}
		if summaries[0].ID < summaries[1].ID {
			t.Fatalf("expected newest first, got %d before %d", summaries[0].ID, summaries[1].ID)
		}
		if summaries[0].ItemName != "Capa Noche" {
			t.Fatalf("expected item name, got %q", summaries[0].ItemName)
		}
	})
}
