package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"blogCPT/internal/models"
	"blogCPT/internal/service"
)

// HTMLData - контекст, который уходит в шаблоны.
// Собирается заново на каждый запрос, общего изменяемого состояния нет.
type HTMLData struct {
	Title        string
	Page         *service.PostPage
	Detail       *service.PostDetail
	Posts        []models.Post
	Query        string
	FormError    string
	FormData     map[string]string
	Notice       string
	ContactEmail string
	UserID       string
}

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
	"humanTime": func(t time.Time) string {
		return humanize.Time(t)
	},
	"detailURL": func(p models.Post) string {
		return fmt.Sprintf("/post/%s-%d/", p.Slug, p.PostID)
	},
}

type Renderer struct {
	dir string
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Render рендерит страницу во временный буфер, чтобы ошибка шаблона
// не уходила клиенту половиной страницы
func (rn *Renderer) Render(w http.ResponseWriter, pageFile string, data *HTMLData) {
	if data == nil {
		data = &HTMLData{}
	}

	files := []string{
		filepath.Join(rn.dir, "base.layout.html"),
		filepath.Join(rn.dir, pageFile),
	}

	ts, err := template.New("").Funcs(functions).ParseFiles(files...)
	if err != nil {
		log.Printf("Ошибка при разборе шаблона %s: %v", pageFile, err)
		WriteError(w, "Ошибка рендеринга страницы", http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	err = ts.ExecuteTemplate(buf, "base", data)
	if err != nil {
		log.Printf("Ошибка при рендеринге шаблона %s: %v", pageFile, err)
		WriteError(w, "Ошибка рендеринга страницы", http.StatusInternalServerError)
		return
	}

	buf.WriteTo(w)
}
