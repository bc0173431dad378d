package transport

import (
	"sales-api/internal/domain"
	"sales-api/internal/middleware"
	"sales-api/internal/service"

	graphql "github.com/graph-gophers/graphql-go"
)

type userInput struct {
	Name     string `json:"name" validate:"required"`
	LastName string `json:"lastName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type productInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Stock       int32   `json:"stock" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
}

func (in productInput) toService() service.ProductInput {
	return service.ProductInput{
		Name:        in.Name,
		Description: in.Description,
		Stock:       int(in.Stock),
		Price:       in.Price,
	}
}

type customerInput struct {
	Name      string  `json:"name" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Company   string  `json:"company" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	CellPhone *string `json:"cellPhone"`
}

func (in customerInput) toService() service.CustomerInput {
	return service.CustomerInput{
		Name:      in.Name,
		LastName:  in.LastName,
		Company:   in.Company,
		Email:     in.Email,
		CellPhone: in.CellPhone,
	}
}

type orderProductInput struct {
	ID       graphql.ID `json:"id" validate:"required"`
	Quantity int32      `json:"quantity" validate:"gt=0"`
	Name     *string    `json:"name"`
	Price    *float64   `json:"price"`
}

type orderInput struct {
	Order    *[]orderProductInput `json:"order"`
	Total    *float64             `json:"total" validate:"omitempty,gte=0"`
	Customer *graphql.ID          `json:"customer"`
	State    *string              `json:"state" validate:"omitempty,oneof=PENDING COMPLETED REJECTED"`
}

func (in orderInput) validate() error {
	if err := middleware.ValidateInput(in); err != nil {
		return err
	}
	if in.Order != nil {
		for _, line := range *in.Order {
			if err := middleware.ValidateInput(line); err != nil {
				return err
			}
		}
	}
	return nil
}

func (in orderInput) toService() service.OrderInput {
	out := service.OrderInput{Total: in.Total}
	if in.Customer != nil {
		out.CustomerID = string(*in.Customer)
	}
	if in.State != nil {
		state := domain.OrderState(*in.State)
		out.State = &state
	}
	if in.Order != nil {
		out.Items = make([]service.LineItemInput, 0, len(*in.Order))
		for _, line := range *in.Order {
			out.Items = append(out.Items, service.LineItemInput{
				ProductID: string(line.ID),
				Quantity:  int(line.Quantity),
			})
		}
	}
	return out
}
