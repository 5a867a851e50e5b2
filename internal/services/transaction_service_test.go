package services

import (
	"testing"
	"time"

	"github.com/hetpatel672/BudgetWise/internal/models"
	"github.com/hetpatel672/BudgetWise/internal/pagination"
	"github.com/hetpatel672/BudgetWise/internal/testutil"
)

func newTransactionService(t *testing.T) (TransactionServicer, ReportServicer) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	reports := NewReportService(db)
	return NewTransactionService(db, reports), reports
}

func TestAddTransaction(t *testing.T) {
	t.Run("generates_defaults", func(t *testing.T) {
		svc, _ := newTransactionService(t)

		tx, err := svc.Add(TransactionInput{
			Amount: 12.50,
			Type:   models.TransactionTypeExpense,
		})
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected generated id")
		}
		if tx.Account != "main" {
			t.Errorf("expected default account main, got %s", tx.Account)
		}
		if tx.Currency != "USD" {
			t.Errorf("expected default currency USD, got %s", tx.Currency)
		}
		if tx.Date.IsZero() {
			t.Error("expected generated date")
		}
		if tx.CreatedAt.IsZero() || tx.UpdatedAt.IsZero() {
			t.Error("expected generated timestamps")
		}
	})

	t.Run("round_trip_preserves_fields", func(t *testing.T) {
		svc, _ := newTransactionService(t)

		end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		input := TransactionInput{
			Amount:      42.75,
			Type:        models.TransactionTypeExpense,
			Category:    "Food & Dining",
			Subcategory: "Coffee",
			Description: "flat white",
			Date:        time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
			Account:     "wallet",
			Currency:    "EUR",
			Tags:        []string{"morning", "work"},
			Location:    "Berlin",
			Receipt:     "receipt-17",
			Recurring:   true,
			RecurringPattern: &models.RecurringPattern{
				Frequency: "weekly",
				Interval:  1,
				EndDate:   &end,
			},
		}

		created, err := svc.Add(input)
		testutil.AssertNoError(t, err)

		got, err := svc.GetByID(created.ID)
		testutil.AssertNoError(t, err)

		if got.Amount != input.Amount {
			t.Errorf("amount: expected %v, got %v", input.Amount, got.Amount)
		}
		if got.Category != input.Category || got.Subcategory != input.Subcategory {
			t.Errorf("category: expected %s/%s, got %s/%s", input.Category, input.Subcategory, got.Category, got.Subcategory)
		}
		if len(got.Tags) != 2 || got.Tags[0] != "morning" || got.Tags[1] != "work" {
			t.Errorf("tags: expected ordered [morning work], got %v", got.Tags)
		}
		if !got.Recurring {
			t.Error("expected recurring to survive the round trip")
		}
		if got.RecurringPattern == nil || got.RecurringPattern.Frequency != "weekly" {
			t.Errorf("recurring pattern: expected weekly, got %+v", got.RecurringPattern)
		}
		if got.Account != "wallet" || got.Currency != "EUR" {
			t.Errorf("expected wallet/EUR, got %s/%s", got.Account, got.Currency)
		}
	})

	t.Run("duplicate_id", func(t *testing.T) {
		svc, _ := newTransactionService(t)

		_, err := svc.Add(TransactionInput{ID: "fixed-id", Amount: 1, Type: models.TransactionTypeIncome})
		testutil.AssertNoError(t, err)

		_, err = svc.Add(TransactionInput{ID: "fixed-id", Amount: 2, Type: models.TransactionTypeIncome})
		testutil.AssertAppError(t, err, "DUPLICATE_TRANSACTION")
	})

	t.Run("invalid_type", func(t *testing.T) {
		svc, _ := newTransactionService(t)

		_, err := svc.Add(TransactionInput{Amount: 1, Type: "loan"})
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})

	t.Run("negative_amount", func(t *testing.T) {
		svc, _ := newTransactionService(t)

		_, err := svc.Add(TransactionInput{Amount: -5, Type: models.TransactionTypeExpense})
		testutil.AssertAppError(t, err, "NEGATIVE_AMOUNT")
	})
}

func TestListTransactions(t *testing.T) {
	t.Run("orders_by_date_descending", func(t *testing.T) {
		svc, _ := newTransactionService(t)

		for day := 1; day <= 3; day++ {
			_, err := svc.Add(TransactionInput{
				Amount: float64(day),
				Type:   models.TransactionTypeExpense,
				Date:   time.Date(2026, 1, day, 12, 0, 0, 0, time.UTC),
			})
			testutil.AssertNoError(t, err)
		}

		result, err := svc.List(pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Fatalf("expected 3 transactions, got %d", result.TotalItems)
		}
		if result.Data[0].Amount != 3 || result.Data[2].Amount != 1 {
			t.Errorf("expected newest first, got amounts %v, %v, %v",
				result.Data[0].Amount, result.Data[1].Amount, result.Data[2].Amount)
		}
	})

	t.Run("filters_and_pagination", func(t *testing.T) {
		svc, _ := newTransactionService(t)

		base := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			_, err := svc.Add(TransactionInput{
				Amount:   10,
				Type:     models.TransactionTypeExpense,
				Category: "Shopping",
				Date:     base.AddDate(0, 0, i),
			})
			testutil.AssertNoError(t, err)
		}
		_, err := svc.Add(TransactionInput{
			Amount:   99,
			Type:     models.TransactionTypeIncome,
			Category: "Salary",
			Date:     base,
		})
		testutil.AssertNoError(t, err)

		expense := models.TransactionTypeExpense
		category := "Shopping"
		start := base.AddDate(0, 0, 1)
		end := base.AddDate(0, 0, 3)
		result, err := svc.List(
			pagination.PageRequest{Limit: 2, Offset: 1},
			TransactionFilter{Type: &expense, Category: &category, StartDate: &start, EndDate: &end},
		)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Errorf("expected 3 matches in range, got %d", result.TotalItems)
		}
		if len(result.Data) != 2 {
			t.Errorf("expected page of 2, got %d", len(result.Data))
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("refreshes_fields", func(t *testing.T) {
		svc, _ := newTransactionService(t)

		created, err := svc.Add(TransactionInput{
			Amount:   10,
			Type:     models.TransactionTypeExpense,
			Category: "Shopping",
		})
		testutil.AssertNoError(t, err)

		updated, err := svc.Update(created.ID, TransactionInput{
			Amount:   25,
			Type:     models.TransactionTypeExpense,
			Category: "Entertainment",
		})
		testutil.AssertNoError(t, err)

		if updated.Amount != 25 || updated.Category != "Entertainment" {
			t.Errorf("expected updated fields, got %+v", updated)
		}
		if updated.ID != created.ID {
			t.Error("expected id to be preserved")
		}
	})

	t.Run("missing", func(t *testing.T) {
		svc, _ := newTransactionService(t)

		_, err := svc.Update("nope", TransactionInput{Amount: 1, Type: models.TransactionTypeIncome})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("removes_row", func(t *testing.T) {
		svc, _ := newTransactionService(t)

		created, err := svc.Add(TransactionInput{Amount: 1, Type: models.TransactionTypeIncome})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Delete(created.ID))

		_, err = svc.GetByID(created.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("missing", func(t *testing.T) {
		svc, _ := newTransactionService(t)
		testutil.AssertAppError(t, svc.Delete("nope"), "TRANSACTION_NOT_FOUND")
	})
}
