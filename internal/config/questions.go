package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// SoftSkillSections is the fixed category order. Question index
// technicalCount+i in a session always belongs to SoftSkillSections[i].
var SoftSkillSections = []string{
	"communication",
	"teamwork",
	"problemSolving",
	"adaptability",
	"leadership",
	"timeManagement",
}

// QuestionBank holds the soft-skill question pools, one per category.
type QuestionBank struct {
	Sections []BankSection `yaml:"sections"`
}

type BankSection struct {
	Name      string   `yaml:"name"`
	Title     string   `yaml:"title"`
	Questions []string `yaml:"questions"`
}

// LoadBank loads the soft-skill question bank from a YAML file.
func LoadBank(filename string) (*QuestionBank, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	var bank QuestionBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parsing question bank YAML: %w", err)
	}

	if err := validateBank(&bank); err != nil {
		return nil, fmt.Errorf("validating question bank: %w", err)
	}
	return &bank, nil
}

func validateBank(bank *QuestionBank) error {
	if len(bank.Sections) != len(SoftSkillSections) {
		return fmt.Errorf("expected %d sections, got %d", len(SoftSkillSections), len(bank.Sections))
	}
	for i, section := range bank.Sections {
		if section.Name != SoftSkillSections[i] {
			return fmt.Errorf("section %d must be %q, got %q", i, SoftSkillSections[i], section.Name)
		}
		if section.Title == "" {
			return fmt.Errorf("section %q must have a title", section.Name)
		}
		if len(section.Questions) == 0 {
			return fmt.Errorf("section %q has no questions", section.Name)
		}
	}
	return nil
}

// Pick returns one uniformly random question from the named category pool.
// The second return is false when the category has no pool.
func (b *QuestionBank) Pick(section string, rng *rand.Rand) (string, bool) {
	for _, s := range b.Sections {
		if s.Name == section && len(s.Questions) > 0 {
			return s.Questions[rng.Intn(len(s.Questions))], true
		}
	}
	return "", false
}
