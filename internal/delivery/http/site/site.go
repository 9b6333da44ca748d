package site

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"bookstore-service/internal/infrastructure/logger"
	"bookstore-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const Prefix = "/site/"

type site struct {
	tasks  *usecase.TaskUseCase
	logger *logger.Logger
}

// Register mounts the static pages under /site/ and the to-do list under
// /todo/ and installs the HTML templates on r.
func Register(r *gin.Engine, tasks *usecase.TaskUseCase, logger *logger.Logger) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	s := &site{tasks: tasks, logger: logger}

	pages := r.Group("/site")
	pages.GET("/", page("home.html"))
	pages.GET("/about", page("about.html"))
	pages.GET("/contact", page("contact.html"))

	todo := r.Group("/todo")
	todo.GET("/", s.listTasks)
	todo.POST("/add", s.addTask)
}

func page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, gin.H{})
	}
}

// NotFound renders the 404 page for unknown /site/ paths and a JSON body
// for everything else.
func NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, Prefix) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{"Path": c.Request.URL.Path})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
}

func (s *site) listTasks(c *gin.Context) {
	tasks, err := s.tasks.ListTasks(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to list tasks", "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong!")
		return
	}
	c.HTML(http.StatusOK, "todo.html", gin.H{"Tasks": tasks})
}

func (s *site) addTask(c *gin.Context) {
	_, err := s.tasks.AddTask(c.Request.Context(), c.PostForm("task"))
	if err != nil && !errors.Is(err, usecase.ErrValidation) {
		s.logger.Error("Failed to add task", "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong!")
		return
	}
	c.Redirect(http.StatusFound, "/todo/")
}
