package usecase_test

import (
	"context"
	"errors"
	"testing"

	"libraryapi/internal/entity"
	"libraryapi/internal/store/mocks"
	"libraryapi/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

const testISBN = "1234567890123"

// inTxWith wires the mock store so InTx runs the state machine against the
// given transaction mock, like the real store does inside one transaction.
func inTxWith(mockStore *mocks.MockLoanStore, mockTx *mocks.MockLoanTx) {
	mockStore.EXPECT().
		InTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(usecase.LoanTx) error) error {
			return fn(mockTx)
		})
}

func TestLoanUsecase_Borrow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	user := entity.User{ID: 1, Name: "Ada", Email: "ada@example.com"}
	book := entity.Book{ID: 7, ISBN: testISBN, Title: "Clean Code", Status: entity.BookStatusAvailable, TotalCopies: 1}

	t.Run("user not found", func(t *testing.T) {
		mockStore := mocks.NewMockLoanStore(ctrl)
		mockTx := mocks.NewMockLoanTx(ctrl)
		inTxWith(mockStore, mockTx)
		mockTx.EXPECT().GetUserByID(ctx, int64(99)).Return(entity.User{}, usecase.ErrNotFound)

		err := usecase.NewLoanUsecase(mockStore).Borrow(ctx, testISBN, 99)

		assert.True(t, errors.Is(err, usecase.ErrNotFound))
		assert.Equal(t, "User not found", err.Error())
	})

	t.Run("book not found", func(t *testing.T) {
		mockStore := mocks.NewMockLoanStore(ctrl)
		mockTx := mocks.NewMockLoanTx(ctrl)
		inTxWith(mockStore, mockTx)
		mockTx.EXPECT().GetUserByID(ctx, user.ID).Return(user, nil)
		mockTx.EXPECT().GetBookByISBN(ctx, testISBN).Return(entity.Book{}, usecase.ErrNotFound)

		err := usecase.NewLoanUsecase(mockStore).Borrow(ctx, testISBN, user.ID)

		assert.True(t, errors.Is(err, usecase.ErrNotFound))
		assert.Equal(t, "Book not found", err.Error())
	})

	t.Run("already borrowed by user", func(t *testing.T) {
		mockStore := mocks.NewMockLoanStore(ctrl)
		mockTx := mocks.NewMockLoanTx(ctrl)
		inTxWith(mockStore, mockTx)
		mockTx.EXPECT().GetUserByID(ctx, user.ID).Return(user, nil)
		mockTx.EXPECT().GetBookByISBN(ctx, testISBN).Return(book, nil)
		mockTx.EXPECT().LoanExists(ctx, user.ID, book.ID).Return(true, nil)

		err := usecase.NewLoanUsecase(mockStore).Borrow(ctx, testISBN, user.ID)

		assert.True(t, errors.Is(err, usecase.ErrConflict))
		assert.Equal(t, "Book is already borrowed by user.", err.Error())
	})

	t.Run("no copies left", func(t *testing.T) {
		mockStore := mocks.NewMockLoanStore(ctrl)
		mockTx := mocks.NewMockLoanTx(ctrl)
		inTxWith(mockStore, mockTx)
		mockTx.EXPECT().GetUserByID(ctx, user.ID).Return(user, nil)
		mockTx.EXPECT().GetBookByISBN(ctx, testISBN).Return(book, nil)
		mockTx.EXPECT().LoanExists(ctx, user.ID, book.ID).Return(false, nil)
		mockTx.EXPECT().CountActiveLoans(ctx, book.ID).Return(1, nil)
		// status re-sync persists even though the borrow failed
		mockStore.EXPECT().MarkUnavailable(ctx, book.ID).Return(nil)

		err := usecase.NewLoanUsecase(mockStore).Borrow(ctx, testISBN, user.ID)

		assert.True(t, errors.Is(err, usecase.ErrConflict))
		assert.Equal(t, "The book is not available.", err.Error())
	})

	t.Run("success - last copy flips status", func(t *testing.T) {
		mockStore := mocks.NewMockLoanStore(ctrl)
		mockTx := mocks.NewMockLoanTx(ctrl)
		inTxWith(mockStore, mockTx)
		mockTx.EXPECT().GetUserByID(ctx, user.ID).Return(user, nil)
		mockTx.EXPECT().GetBookByISBN(ctx, testISBN).Return(book, nil)
		mockTx.EXPECT().LoanExists(ctx, user.ID, book.ID).Return(false, nil)
		mockTx.EXPECT().CountActiveLoans(ctx, book.ID).Return(0, nil)
		mockTx.EXPECT().CreateLoan(ctx, user.ID, book.ID, gomock.Any()).Return(nil)
		mockTx.EXPECT().UpdateBookStatus(ctx, book.ID, entity.BookStatusUnavailable).Return(nil)

		err := usecase.NewLoanUsecase(mockStore).Borrow(ctx, testISBN, user.ID)

		assert.NoError(t, err)
	})

	t.Run("success - copies remain", func(t *testing.T) {
		multi := book
		multi.TotalCopies = 3

		mockStore := mocks.NewMockLoanStore(ctrl)
		mockTx := mocks.NewMockLoanTx(ctrl)
		inTxWith(mockStore, mockTx)
		mockTx.EXPECT().GetUserByID(ctx, user.ID).Return(user, nil)
		mockTx.EXPECT().GetBookByISBN(ctx, testISBN).Return(multi, nil)
		mockTx.EXPECT().LoanExists(ctx, user.ID, multi.ID).Return(false, nil)
		mockTx.EXPECT().CountActiveLoans(ctx, multi.ID).Return(0, nil)
		mockTx.EXPECT().CreateLoan(ctx, user.ID, multi.ID, gomock.Any()).Return(nil)
		mockTx.EXPECT().UpdateBookStatus(ctx, multi.ID, entity.BookStatusAvailable).Return(nil)

		err := usecase.NewLoanUsecase(mockStore).Borrow(ctx, testISBN, user.ID)

		assert.NoError(t, err)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		mockStore := mocks.NewMockLoanStore(ctrl)
		mockTx := mocks.NewMockLoanTx(ctrl)
		inTxWith(mockStore, mockTx)
		mockTx.EXPECT().GetUserByID(ctx, user.ID).Return(entity.User{}, context.DeadlineExceeded)

		err := usecase.NewLoanUsecase(mockStore).Borrow(ctx, testISBN, user.ID)

		assert.Error(t, err)
		assert.False(t, errors.Is(err, usecase.ErrNotFound))
	})
}

func TestLoanUsecase_Return(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	user := entity.User{ID: 1, Name: "Ada", Email: "ada@example.com"}
	book := entity.Book{ID: 7, ISBN: testISBN, Title: "Clean Code", Status: entity.BookStatusUnavailable, TotalCopies: 1}

	t.Run("book not found", func(t *testing.T) {
		mockStore := mocks.NewMockLoanStore(ctrl)
		mockTx := mocks.NewMockLoanTx(ctrl)
		inTxWith(mockStore, mockTx)
		mockTx.EXPECT().GetBookByISBN(ctx, testISBN).Return(entity.Book{}, usecase.ErrNotFound)

		err := usecase.NewLoanUsecase(mockStore).Return(ctx, testISBN, user.ID)

		assert.True(t, errors.Is(err, usecase.ErrNotFound))
		assert.Equal(t, "Book not found.", err.Error())
	})

	t.Run("user not found", func(t *testing.T) {
		mockStore := mocks.NewMockLoanStore(ctrl)
		mockTx := mocks.NewMockLoanTx(ctrl)
		inTxWith(mockStore, mockTx)
		mockTx.EXPECT().GetBookByISBN(ctx, testISBN).Return(book, nil)
		mockTx.EXPECT().GetUserByID(ctx, int64(99)).Return(entity.User{}, usecase.ErrNotFound)

		err := usecase.NewLoanUsecase(mockStore).Return(ctx, testISBN, 99)

		assert.True(t, errors.Is(err, usecase.ErrNotFound))
		assert.Equal(t, "User not found.", err.Error())
	})

	t.Run("not currently borrowed", func(t *testing.T) {
		mockStore := mocks.NewMockLoanStore(ctrl)
		mockTx := mocks.NewMockLoanTx(ctrl)
		inTxWith(mockStore, mockTx)
		mockTx.EXPECT().GetBookByISBN(ctx, testISBN).Return(book, nil)
		mockTx.EXPECT().GetUserByID(ctx, user.ID).Return(user, nil)
		mockTx.EXPECT().LoanExists(ctx, user.ID, book.ID).Return(false, nil)

		err := usecase.NewLoanUsecase(mockStore).Return(ctx, testISBN, user.ID)

		assert.True(t, errors.Is(err, usecase.ErrInvalidInput))
		assert.Equal(t, "Book is not currently borrowed.", err.Error())
	})

	t.Run("success restores a copy and the status", func(t *testing.T) {
		mockStore := mocks.NewMockLoanStore(ctrl)
		mockTx := mocks.NewMockLoanTx(ctrl)
		inTxWith(mockStore, mockTx)
		mockTx.EXPECT().GetBookByISBN(ctx, testISBN).Return(book, nil)
		mockTx.EXPECT().GetUserByID(ctx, user.ID).Return(user, nil)
		mockTx.EXPECT().LoanExists(ctx, user.ID, book.ID).Return(true, nil)
		mockTx.EXPECT().DeleteLoan(ctx, user.ID, book.ID).Return(nil)
		mockTx.EXPECT().UpdateBookStatus(ctx, book.ID, entity.BookStatusAvailable).Return(nil)

		err := usecase.NewLoanUsecase(mockStore).Return(ctx, testISBN, user.ID)

		assert.NoError(t, err)
	})
}
