package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/apierror"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/gateway"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeGatewayError maps a gateway failure onto the dashboard API:
// transport failures become 502, upstream HTTP errors keep their status,
// anything else is a 500. The message always passes through unchanged.
func writeGatewayError(c *gin.Context, err error) {
	var netErr *gateway.NetworkError
	if errors.As(err, &netErr) {
		c.JSON(http.StatusBadGateway, apierror.New(netErr.Error()))
		return
	}
	var httpErr *gateway.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.Status, apierror.New(httpErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
}
