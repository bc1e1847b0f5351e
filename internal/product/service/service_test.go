package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"posadmin/internal/product/models"
	"posadmin/internal/product/store"
	dErrors "posadmin/pkg/domain-errors"
)

type ProductServiceSuite struct {
	suite.Suite
	store   *store.InMemory
	service *Service
	ctx     context.Context
}

func (s *ProductServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.service = New(s.store)
	s.ctx = context.Background()
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceSuite))
}

func (s *ProductServiceSuite) create(name string) int64 {
	id, _, err := s.service.Create(s.ctx, &models.Product{
		Name: name, Price: 99.5, StockQuantity: 3, Category: "drinks", Rating: 4,
	})
	s.Require().NoError(err)
	return id
}

func (s *ProductServiceSuite) TestCreateAssignsOrderCode() {
	_, code, err := s.service.Create(s.ctx, &models.Product{Name: "Iced Latte", Price: 120})
	s.Require().NoError(err)
	s.True(strings.HasPrefix(code, "ORD-"))
	s.Len(code, len("ORD-")+9)
	s.Equal(strings.ToUpper(code), code)
}

func (s *ProductServiceSuite) TestValidation() {
	cases := []struct {
		name    string
		product models.Product
	}{
		{"missing name", models.Product{Price: 10}},
		{"negative price", models.Product{Name: "x", Price: -1}},
		{"negative stock", models.Product{Name: "x", StockQuantity: -1}},
		{"rating out of range", models.Product{Name: "x", Rating: 6}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, _, err := s.service.Create(s.ctx, &tc.product)
			s.Require().Error(err)
			s.True(dErrors.Is(err, dErrors.CodeBadRequest))
		})
	}
}

func (s *ProductServiceSuite) TestPagination() {
	for i := 0; i < 25; i++ {
		s.create("Product")
	}

	s.Run("first page with default size", func() {
		page, err := s.service.Page(s.ctx, 1, 10)
		s.Require().NoError(err)
		s.Len(page.Products, 10)
		s.Equal(1, page.CurrentPage)
		s.Equal(3, page.TotalPages)
		s.Equal(25, page.TotalItems)
	})

	s.Run("last page is short", func() {
		page, err := s.service.Page(s.ctx, 3, 10)
		s.Require().NoError(err)
		s.Len(page.Products, 5)
	})

	s.Run("page past the end is empty but well-formed", func() {
		page, err := s.service.Page(s.ctx, 9, 10)
		s.Require().NoError(err)
		s.Empty(page.Products)
		s.Equal(3, page.TotalPages)
	})

	s.Run("bad page and limit values clamp", func() {
		page, err := s.service.Page(s.ctx, 0, -5)
		s.Require().NoError(err)
		s.Len(page.Products, 10)
		s.Equal(1, page.CurrentPage)
	})
}

func (s *ProductServiceSuite) TestUpdateAndDelete() {
	id := s.create("Brownie")

	s.Run("update rewrites fields but keeps the order code", func() {
		page, err := s.service.Page(s.ctx, 1, 10)
		s.Require().NoError(err)
		original := page.Products[0]

		err = s.service.Update(s.ctx, &models.Product{
			ID: id, Name: "Fudge Brownie", Price: 75, StockQuantity: 12, Rating: 4.5,
		})
		s.Require().NoError(err)

		page, err = s.service.Page(s.ctx, 1, 10)
		s.Require().NoError(err)
		s.Equal("Fudge Brownie", page.Products[0].Name)
		s.Equal(original.OrderCode, page.Products[0].OrderCode)
	})

	s.Run("update of a missing product is not found", func() {
		err := s.service.Update(s.ctx, &models.Product{ID: 99, Name: "ghost"})
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})

	s.Run("delete removes the product", func() {
		s.Require().NoError(s.service.Delete(s.ctx, id))
		s.True(dErrors.Is(s.service.Delete(s.ctx, id), dErrors.CodeNotFound))
	})
}
