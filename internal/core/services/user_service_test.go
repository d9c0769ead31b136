package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/personal_banking_app/internal/apperrors"
	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	portssvc "github.com/SscSPs/personal_banking_app/internal/core/ports/services"
	"github.com/SscSPs/personal_banking_app/internal/core/services"
	"github.com/SscSPs/personal_banking_app/internal/dto"
	"github.com/SscSPs/personal_banking_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUserWithAccounts(ctx context.Context, user domain.User, accounts []domain.Account) error {
	args := m.Called(ctx, user, accounts)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func registerRequest() dto.RegisterUserRequest {
	return dto.RegisterUserRequest{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "+15550100",
		Address:     "12 Analytical Way",
		DateOfBirth: "1990-12-10",
		Password:    "correct-horse-battery",
	}
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestRegisterUser_CreatesBothAccounts() {
	ctx := context.Background()
	req := registerRequest()

	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUserWithAccounts", ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("[]domain.Account")).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal(req.Email, user.Email)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))
	suite.WithinDuration(time.Now(), user.CreatedAt, time.Second)

	// both kinds created, starting at zero
	accounts := suite.mockRepo.Calls[1].Arguments.Get(2).([]domain.Account)
	suite.Require().Len(accounts, 2)
	kinds := map[domain.AccountKind]bool{}
	for _, acc := range accounts {
		kinds[acc.Kind] = true
		suite.Equal(user.UserID, acc.UserID)
		suite.True(acc.Balance.IsZero())
	}
	suite.True(kinds[domain.Checking])
	suite.True(kinds[domain.Savings])

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	req := registerRequest()
	existing := &domain.User{UserID: uuid.NewString(), Email: req.Email}

	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).Return(existing, nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUserWithAccounts")
}

func (suite *UserServiceTestSuite) TestVerifyCredentials_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter2hunter2")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: uuid.NewString(), Email: "ada@example.com", PasswordHash: hash}

	suite.mockRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	user, err := suite.service.VerifyCredentials(ctx, stored.Email, "hunter2hunter2")

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestVerifyCredentials_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter2hunter2")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: uuid.NewString(), Email: "ada@example.com", PasswordHash: hash}

	suite.mockRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	user, err := suite.service.VerifyCredentials(ctx, stored.Email, "wrong-password")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestVerifyCredentials_UnknownEmail() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.VerifyCredentials(ctx, "nobody@example.com", "whatever123")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(user)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
