package transport

import (
	"net/http"

	"sales-api/internal/logger"
	"sales-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

const maxRequestBytes = 1 << 20

// GraphQLRequest represents a GraphQL request payload
type GraphQLRequest struct {
	Query         string                 `json:"query" validate:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLHandler serves the GraphQL endpoint
type GraphQLHandler struct {
	schema *graphql.Schema
	logger *zap.Logger
}

// NewGraphQLHandler creates a new GraphQLHandler
func NewGraphQLHandler(schema *graphql.Schema, logger *zap.Logger) *GraphQLHandler {
	return &GraphQLHandler{
		schema: schema,
		logger: logger,
	}
}

// RegisterRoutes registers the GraphQL route
func (h *GraphQLHandler) RegisterRoutes(r chi.Router) {
	r.Post("/graphql", h.ServeGraphQL)
}

// ServeGraphQL executes one GraphQL operation. Operation-level failures are
// reported inside the response body with status 200.
func (h *GraphQLHandler) ServeGraphQL(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req GraphQLRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		log.Debug("GraphQL request rejected", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)
	if len(response.Errors) > 0 {
		log.Debug("GraphQL operation returned errors",
			zap.String("operation", req.OperationName),
			zap.Int("errors", len(response.Errors)),
		)
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}
