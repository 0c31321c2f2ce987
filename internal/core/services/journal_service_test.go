package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hms-suite/hms_accounting/internal/apperrors"
	"github.com/hms-suite/hms_accounting/internal/core/domain"
	portsrepo "github.com/hms-suite/hms_accounting/internal/core/ports/repositories"
	portssvc "github.com/hms-suite/hms_accounting/internal/core/ports/services"
	"github.com/hms-suite/hms_accounting/internal/core/services"
	"github.com/hms-suite/hms_accounting/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntryLine), returnedToken, args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, approvedBy string, approvedAt time.Time) error {
	args := m.Called(ctx, entryID, approvedBy, approvedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkEntryCancelled(ctx context.Context, entryID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, reversal, lines)
	return args.Error(0)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartOfAccount, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ChartOfAccount), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.ChartOfAccount, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartOfAccount), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.JournalSvcFacade
	cashAccount     domain.ChartOfAccount
	revenueAccount  domain.ChartOfAccount
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc)

	suite.userID = uuid.NewString()
	suite.cashAccount = domain.ChartOfAccount{
		AccountID: uuid.NewString(),
		Code:      "1010",
		Name:      "Operating Cash",
		Type:      domain.Asset,
		IsActive:  true,
	}
	suite.revenueAccount = domain.ChartOfAccount{
		AccountID: uuid.NewString(),
		Code:      "4000",
		Name:      "Room Revenue",
		Type:      domain.Revenue,
		IsActive:  true,
	}
}

func (suite *JournalServiceTestSuite) draftEntry(entryID string) *domain.JournalEntry {
	entryDate := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	return &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-202608-AB12CD34",
		Description: "Room booking payment",
		EntryDate:   entryDate,
		PeriodYear:  2026,
		PeriodMonth: 8,
		Status:      domain.Draft,
	}
}

func (suite *JournalServiceTestSuite) balancedLines(entryID string) []domain.JournalEntryLine {
	return []domain.JournalEntryLine{
		{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   suite.cashAccount.AccountID,
			DebitAmount: decimal.NewFromInt(250),
			Description: "Cash received",
		},
		{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    suite.revenueAccount.AccountID,
			CreditAmount: decimal.NewFromInt(250),
			Description:  "Room night",
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Room booking payment",
		EntryDate:   time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC),
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(250)},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.NewFromInt(250)},
		},
	}

	accounts := map[string]domain.ChartOfAccount{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 2
	})).Return(accounts, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.Draft, entry.Status)
	suite.Equal(2026, entry.PeriodYear)
	suite.Equal(8, entry.PeriodMonth)
	suite.Regexp(`^JE-202608-[0-9A-F]{1,8}$`, entry.EntryNumber)
	suite.Len(entry.Lines, 2)
	suite.Equal(suite.userID, entry.CreatedBy)

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NoLines() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Empty entry",
		EntryDate:   time.Now(),
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	req := dto.CreateJournalEntryRequest{
		Description: "Bad entry",
		EntryDate:   time.Now(),
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: unknownID, DebitAmount: decimal.NewFromInt(10)},
		},
	}

	// The batch lookup silently omits unknown IDs; the line validation reports them.
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, []string{unknownID}).
		Return(map[string]domain.ChartOfAccount{}, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "unknown account")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := domain.ChartOfAccount{
		AccountID: uuid.NewString(),
		Code:      "1099",
		Name:      "Closed Account",
		Type:      domain.Asset,
		IsActive:  false,
	}
	req := dto.CreateJournalEntryRequest{
		Description: "Entry against closed account",
		EntryDate:   time.Now(),
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: inactive.AccountID, DebitAmount: decimal.NewFromInt(10)},
		},
	}

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, []string{inactive.AccountID}).
		Return(map[string]domain.ChartOfAccount{inactive.AccountID: inactive}, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "inactive account")
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnbalancedDraftAccepted() {
	// Balance is only enforced at posting; an unbalanced draft saves fine.
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Half-entered adjustment",
		EntryDate:   time.Now(),
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, []string{suite.cashAccount.AccountID}).
		Return(map[string]domain.ChartOfAccount{suite.cashAccount.AccountID: suite.cashAccount}, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, entry.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := suite.draftEntry(entryID)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(suite.balancedLines(entryID), nil).Once()
	suite.mockJournalRepo.On("MarkEntryPosted", ctx, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Require().NotNil(posted.ApprovedBy)
	suite.Equal(suite.userID, *posted.ApprovedBy)
	suite.NotNil(posted.ApprovedAt)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_Unbalanced() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := suite.draftEntry(entryID)
	lines := []domain.JournalEntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.NewFromInt(99)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := suite.draftEntry(entryID)
	entry.Status = domain.Posted

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(suite.balancedLines(entryID), nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), services.ErrEntryAlreadyPosted.Error())
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_CancelledEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := suite.draftEntry(entryID)
	entry.Status = domain.Cancelled

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(suite.balancedLines(entryID), nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := suite.draftEntry(entryID)
	original.Status = domain.Posted
	originalLines := suite.balancedLines(entryID)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()
	suite.mockJournalRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine")).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, entryID, suite.userID, "duplicate charge")

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.True(reversal.IsReversal)
	suite.Equal("REV-"+original.EntryNumber, reversal.EntryNumber)
	suite.Contains(reversal.Description, "duplicate charge")
	suite.Equal(domain.Posted, reversal.Status)
	suite.Require().NotNil(reversal.OriginalEntryID)
	suite.Equal(entryID, *reversal.OriginalEntryID)

	// Every line swaps sides, so original plus reversal nets to zero.
	suite.Require().Len(reversal.Lines, len(originalLines))
	for i, line := range reversal.Lines {
		suite.True(originalLines[i].CreditAmount.Equal(line.DebitAmount))
		suite.True(originalLines[i].DebitAmount.Equal(line.CreditAmount))
		suite.Equal(originalLines[i].AccountID, line.AccountID)
	}
	suite.True(reversal.TotalDebits().Equal(original.TotalCredits()))
	suite.True(reversal.TotalCredits().Equal(original.TotalDebits()))

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_OfReversalRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversalEntry := suite.draftEntry(entryID)
	reversalEntry.Status = domain.Posted
	reversalEntry.IsReversal = true

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(reversalEntry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(suite.balancedLines(entryID), nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, suite.userID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), services.ErrReversalOfReversal.Error())
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := suite.draftEntry(entryID)
	entry.Status = domain.Reversed

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(suite.balancedLines(entryID), nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, suite.userID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), services.ErrEntryAlreadyReversed.Error())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_DraftRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := suite.draftEntry(entryID)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(suite.balancedLines(entryID), nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, suite.userID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), services.ErrEntryNotPosted.Error())
}

func (suite *JournalServiceTestSuite) TestCancelEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := suite.draftEntry(entryID)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("MarkEntryCancelled", ctx, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.CancelEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCancelEntry_PostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := suite.draftEntry(entryID)
	entry.Status = domain.Posted

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()

	err := suite.service.CancelEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryCancelled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListEntries_UnknownStatus() {
	ctx := context.Background()
	badStatus := "WAITING"

	_, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{Status: &badStatus})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListEntries_StatusCaseInsensitive() {
	ctx := context.Background()
	status := "posted"
	expectedStatus := domain.Posted

	suite.mockJournalRepo.On("ListEntries", ctx, mock.MatchedBy(func(f portsrepo.ListEntriesFilter) bool {
		return f.Status != nil && *f.Status == expectedStatus
	}), 50, (*string)(nil)).Return([]domain.JournalEntry{}, nil, nil).Once()

	resp, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{Status: &status})

	suite.Require().NoError(err)
	suite.Empty(resp.Entries)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
