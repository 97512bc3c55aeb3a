package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/mentor-match/internal/artifact"
	"github.com/spigell/mentor-match/internal/career"
	"github.com/spigell/mentor-match/internal/logger"
)

const PromptOther = "Other..."

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Recommend a career and a mentor for a single profile",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringSlice("skills", nil, "comma separated skills")
	matchCmd.Flags().StringSlice("interests", nil, "comma separated interests")
	matchCmd.Flags().String("education", "", "education, e.g. \"BSc CS\"")
	matchCmd.Flags().String("experience", "", "experience, e.g. \"2 years\"")
	matchCmd.Flags().BoolP("interactive", "i", false, "ask for the profile fields interactively")
	matchCmd.Flags().Bool("missing-as-empty", false, "treat absent skills or interests as empty sets instead of rejecting the profile")
}

func match(cmd *cobra.Command) {
	log, config := setup("stderr")

	model, err := artifact.LoadModel(config.ArtifactDir)
	if err != nil {
		log.Fatal("loading model",
			zap.Error(err),
			zap.String("dir", config.ArtifactDir),
			zap.String("hint", "run `mentor-match build` first"),
		)
	}

	var profile career.Profile
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		profile, err = promptProfile(model.Catalog())
	} else {
		profile, err = profileFromFlags(cmd)
	}
	if err != nil {
		log.Fatal("reading profile", zap.Error(err))
	}

	missingAsEmpty, _ := cmd.Flags().GetBool("missing-as-empty")
	if missingAsEmpty || config.Server.MissingAsEmpty {
		profile = profile.WithEmptyDefaults()
	}

	rec, err := model.Recommend(profile)
	if err != nil {
		log.Fatal("recommending career", append(logger.ProfileFields(profile), zap.Error(err))...)
	}

	log.Debug("career recommended",
		zap.Int("index", rec.Index),
		zap.Float64("distance", rec.Distance),
	)

	pretty, _ := json.MarshalIndent(rec, "", "  ")
	fmt.Println(string(pretty))
}

// profileFromFlags leaves slices nil for flags that were not given, so absent
// fields are reported instead of silently treated as empty.
func profileFromFlags(cmd *cobra.Command) (career.Profile, error) {
	var p career.Profile
	flags := cmd.Flags()

	if flags.Changed("skills") {
		skills, err := flags.GetStringSlice("skills")
		if err != nil {
			return p, err
		}
		p.Skills = trimAll(skills)
	}

	if flags.Changed("interests") {
		interests, err := flags.GetStringSlice("interests")
		if err != nil {
			return p, err
		}
		p.Interests = trimAll(interests)
	}

	p.Education, _ = flags.GetString("education")
	p.Experience, _ = flags.GetString("experience")

	return p, nil
}

func promptProfile(catalog *career.Catalog) (career.Profile, error) {
	var p career.Profile

	skills, err := promptList("Skills (comma separated)")
	if err != nil {
		return p, err
	}

	interests, err := promptList("Interests (comma separated)")
	if err != nil {
		return p, err
	}

	education, err := promptChoice("Education", catalog.Educations())
	if err != nil {
		return p, err
	}

	experience, err := promptChoice("Experience", catalog.Experiences())
	if err != nil {
		return p, err
	}

	return career.Profile{
		Skills:     skills,
		Interests:  interests,
		Education:  education,
		Experience: experience,
	}, nil
}

func promptList(label string) ([]string, error) {
	prompt := promptui.Prompt{Label: label}

	answer, err := prompt.Run()
	if err != nil {
		return nil, err
	}

	return trimAll(strings.Split(answer, ",")), nil
}

func promptChoice(label string, known []string) (string, error) {
	selectPrompt := promptui.Select{
		Label: label,
		Items: append(append([]string{}, known...), PromptOther),
	}

	_, choice, err := selectPrompt.Run()
	if err != nil {
		return "", err
	}

	if choice != PromptOther {
		return choice, nil
	}

	prompt := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("value is required")
			}
			return nil
		},
	}

	answer, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}

// trimAll trims every value and drops the empty ones. The result is never nil.
func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
