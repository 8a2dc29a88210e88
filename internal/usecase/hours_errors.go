package usecase

import (
	stderrors "errors"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/pkg/errors"
)

// hoursError переводит ошибку проверки часов работы в AppError
func hoursError(err error) error {
	if stderrors.Is(err, domain.ErrHoursOverlap) {
		return errors.ErrHoursOverlap.WithDetails(map[string]interface{}{"reason": err.Error()})
	}
	return errors.ErrInvalidOperatingHours.WithMessage(err.Error())
}
