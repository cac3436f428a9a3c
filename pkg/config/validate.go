package config

import "github.com/go-playground/validator/v10"

// validate is shared by all configuration pieces.
var validate = validator.New()
