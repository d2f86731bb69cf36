package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldLabels maps struct field names to user-friendly labels.
var fieldLabels = map[string]string{
	// Auth fields
	"Email":    "Email",
	"Name":     "Name",
	"Password": "Password",
	"Role":     "Role",

	// Profile fields
	"CompanyName":         "Company name",
	"Phone":               "Phone number",
	"LinkedinURL":         "LinkedIn URL",
	"Bio":                 "Bio",
	"Location":            "Location",
	"ExperienceYears":     "Years of experience",
	"TechStack":           "Tech stack",
	"VisaStatus":          "Visa status",
	"ProfessionalSummary": "Professional summary",
	"GithubURL":           "GitHub URL",
	"PortfolioURL":        "Portfolio URL",
	"Certifications":      "Certifications",

	// Job fields
	"Title":              "Title",
	"Description":        "Description",
	"ClientName":         "Client name",
	"ExperienceRequired": "Required experience",
	"TechRequired":       "Required tech",
	"JobType":            "Job type",
	"StartDate":          "Start date",
	"Status":             "Status",

	// Classification / submission fields
	"Text":     "Text",
	"Comments": "Comments",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Summarize joins all validation messages into a single response string.
func Summarize(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Split(param, " "), ", "))

	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)

	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)

	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and common punctuation", label)

	case "valid_phone":
		return fmt.Sprintf("%s must be 7-15 digits, with or without a leading +", label)

	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or special symbols", label)

	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := fieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
