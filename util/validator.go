package util

import "github.com/go-playground/validator/v10"

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("latitude", validateLatitude)
	validate.RegisterValidation("longitude", validateLongitude)
	validate.RegisterValidation("notblank", validateNotBlank)
}

func validateLatitude(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90 && lat <= 90
}

func validateLongitude(fl validator.FieldLevel) bool {
	lon := fl.Field().Float()
	return lon >= -180 && lon <= 180
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return NotBlank(fl.Field().String())
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateCoordinates reports whether lat/lon fall inside the WGS84 ranges.
func ValidateCoordinates(lat, lon float64) error {
	if err := validate.Var(lat, "latitude"); err != nil {
		return err
	}
	return validate.Var(lon, "longitude")
}
