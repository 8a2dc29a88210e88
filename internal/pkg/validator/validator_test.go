package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tourism-microservice/internal/pkg/errors"
)

type hoursInput struct {
	Opening string `validate:"required,hhmm"`
	Name    string `validate:"required"`
}

func TestValidateHHMM(t *testing.T) {
	assert.NoError(t, Validate(hoursInput{Opening: "08:30", Name: "a"}))
	assert.NoError(t, Validate(hoursInput{Opening: "23:59:59", Name: "a"}))
	assert.Error(t, Validate(hoursInput{Opening: "24:00", Name: "a"}))
	assert.Error(t, Validate(hoursInput{Opening: "8:30", Name: "a"}))
	assert.Error(t, Validate(hoursInput{Opening: "08:30", Name: ""}))
}

func TestValidateReturnsFieldDetails(t *testing.T) {
	err := Validate(hoursInput{Opening: "25:00"})
	appErr, ok := errors.As(err)
	assert.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
	assert.Equal(t, "hhmm", appErr.Details["Opening"])
	assert.Equal(t, "required", appErr.Details["Name"])
}
