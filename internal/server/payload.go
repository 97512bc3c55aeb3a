package server

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/mentor-match/internal/career"
)

var errNoProfile = errors.New("no profile data received")

type profilePayload struct {
	Skills     []string `mapstructure:"skills"`
	Interests  []string `mapstructure:"interests"`
	Education  string   `mapstructure:"education"`
	Experience string   `mapstructure:"experience"`
}

type chatPayload struct {
	Message string `mapstructure:"message"`
}

// decodeProfile converts the generic "profile" object of a request body into a
// career.Profile. Absent or null fields stay nil so the encoder can reject them.
func decodeProfile(raw any) (career.Profile, error) {
	fields, ok := raw.(map[string]any)
	if !ok || len(fields) == 0 {
		return career.Profile{}, errNoProfile
	}

	var payload profilePayload
	if err := mapstructure.Decode(fields, &payload); err != nil {
		return career.Profile{}, fmt.Errorf("%w: %s", career.ErrInvalidProfile, err)
	}

	return career.Profile{
		Skills:     payload.Skills,
		Interests:  payload.Interests,
		Education:  payload.Education,
		Experience: payload.Experience,
	}, nil
}

func decodeChat(body map[string]any) (string, error) {
	var payload chatPayload
	if err := mapstructure.Decode(body, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}
