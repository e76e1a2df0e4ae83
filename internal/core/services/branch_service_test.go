package services_test

import (
	"context"
	"testing"

	"bankcore/internal/apperrors"
	"bankcore/internal/core/domain"
	portssvc "bankcore/internal/core/ports/services"
	"bankcore/internal/core/services"
	"bankcore/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BranchServiceTestSuite struct {
	suite.Suite
	mockBranchRepo *MockBranchRepository
	mockRoles      *MockRoleResolver
	service        portssvc.BranchSvcFacade
}

func (suite *BranchServiceTestSuite) SetupTest() {
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.mockRoles = new(MockRoleResolver)
	suite.service = services.NewBranchService(suite.mockBranchRepo, suite.mockRoles)
}

func (suite *BranchServiceTestSuite) TestCreateBranch_Success() {
	ctx := context.Background()
	adminID := uuid.NewString()

	suite.mockRoles.On("RoleOf", ctx, adminID).Return(domain.RoleAdmin, nil).Once()
	suite.mockBranchRepo.On("SaveBranch", ctx, mock.MatchedBy(func(b domain.Branch) bool {
		return b.BranchCode == "00001" && b.IsActive
	})).Return(nil).Once()

	branch, err := suite.service.CreateBranch(ctx, adminID, dto.CreateBranchRequest{BranchCode: "00001", Name: "Downtown"})

	suite.Require().NoError(err)
	suite.Require().NotNil(branch)
	suite.Equal("00001", branch.BranchCode)
	suite.True(branch.IsActive)
	suite.mockBranchRepo.AssertExpectations(suite.T())
}

func (suite *BranchServiceTestSuite) TestCreateBranch_StaffForbidden() {
	ctx := context.Background()
	staffID := uuid.NewString()

	suite.mockRoles.On("RoleOf", ctx, staffID).Return(domain.RoleStaff, nil).Once()

	branch, err := suite.service.CreateBranch(ctx, staffID, dto.CreateBranchRequest{BranchCode: "00001", Name: "Downtown"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(branch)
	suite.mockBranchRepo.AssertNotCalled(suite.T(), "SaveBranch", mock.Anything, mock.Anything)
}

func (suite *BranchServiceTestSuite) TestCreateBranch_BadCodeLength() {
	ctx := context.Background()
	adminID := uuid.NewString()

	suite.mockRoles.On("RoleOf", ctx, adminID).Return(domain.RoleAdmin, nil).Once()

	branch, err := suite.service.CreateBranch(ctx, adminID, dto.CreateBranchRequest{BranchCode: "123", Name: "Short"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(branch)
}

func (suite *BranchServiceTestSuite) TestCreateBranch_DuplicateCode() {
	ctx := context.Background()
	adminID := uuid.NewString()

	suite.mockRoles.On("RoleOf", ctx, adminID).Return(domain.RoleAdmin, nil).Once()
	suite.mockBranchRepo.On("SaveBranch", ctx, mock.AnythingOfType("domain.Branch")).
		Return(apperrors.ErrDuplicate).Once()

	branch, err := suite.service.CreateBranch(ctx, adminID, dto.CreateBranchRequest{BranchCode: "00001", Name: "Downtown"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(branch)
}

func (suite *BranchServiceTestSuite) TestGetBranch_NotFound() {
	ctx := context.Background()

	suite.mockBranchRepo.On("FindBranchByCode", ctx, "00009").Return(nil, apperrors.ErrNotFound).Once()

	branch, err := suite.service.GetBranch(ctx, "00009")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(branch)
}

func (suite *BranchServiceTestSuite) TestListBranches_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockBranchRepo.On("ListBranches", ctx).Return([]domain.Branch(nil), nil).Once()

	branches, err := suite.service.ListBranches(ctx)

	suite.Require().NoError(err)
	suite.NotNil(branches)
	suite.Empty(branches)
}

func TestBranchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BranchServiceTestSuite))
}
