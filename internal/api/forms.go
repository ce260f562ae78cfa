package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"institute-site-backend/internal/model"
)

// formValidator checks forms after trimming. Field errors carry the form
// field name rather than the Go one.
var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

type form interface {
	normalize()
}

// MissingFieldsError lists the required form fields that were absent or blank.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// bindForm decodes the posted form into f, trims it, and validates it.
func bindForm(c *gin.Context, f form) error {
	if err := c.ShouldBindWith(f, binding.Form); err != nil {
		return fmt.Errorf("failed to decode form: %w", err)
	}
	f.normalize()

	err := formValidator.Struct(f)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		missing := &MissingFieldsError{}
		for _, fe := range verrs {
			missing.Fields = append(missing.Fields, fe.Field())
		}
		return missing
	}
	return err
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (f *loginForm) normalize() {
	f.Username = strings.TrimSpace(f.Username)
}

type facultyForm struct {
	Name        string `form:"name" validate:"required"`
	Designation string `form:"designation" validate:"required"`
	Department  string `form:"department" validate:"required"`
	Email       string `form:"email" validate:"required"`
}

func (f *facultyForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Designation = strings.TrimSpace(f.Designation)
	f.Department = strings.TrimSpace(f.Department)
	f.Email = strings.TrimSpace(f.Email)
}

func (f *facultyForm) model() *model.Faculty {
	return &model.Faculty{Name: f.Name, Designation: f.Designation, Department: f.Department, Email: f.Email}
}

type eventForm struct {
	Title       string `form:"title" validate:"required"`
	Date        string `form:"date" validate:"required"`
	Description string `form:"description" validate:"required"`
}

func (f *eventForm) normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Date = strings.TrimSpace(f.Date)
	f.Description = strings.TrimSpace(f.Description)
}

func (f *eventForm) model() *model.Event {
	return &model.Event{Title: f.Title, Date: f.Date, Description: f.Description}
}

type articleForm struct {
	Title   string `form:"title" validate:"required"`
	Content string `form:"content" validate:"required"`
	Author  string `form:"author" validate:"required"`
	Date    string `form:"date" validate:"required"`
}

func (f *articleForm) normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
	f.Author = strings.TrimSpace(f.Author)
	f.Date = strings.TrimSpace(f.Date)
}

func (f *articleForm) model() *model.Article {
	return &model.Article{Title: f.Title, Content: f.Content, Author: f.Author, Date: f.Date}
}
