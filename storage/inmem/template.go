package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/Reema362/learn-spark-lms-sub001/core/template"
)

type templateRepository struct {
	mutex     sync.RWMutex
	templates []template.Template
}

func NewTemplateRepository() template.Repository {
	return &templateRepository{}
}

func (repo *templateRepository) CreateTemplate(_ context.Context, tpl template.Template) (template.Template, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	tpl.ID = newID()
	repo.templates = append(repo.templates, tpl)
	return tpl, nil
}

func (repo *templateRepository) QueryAllTemplates(_ context.Context) ([]template.Template, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]template.Template, len(repo.templates))
	copy(out, repo.templates)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (repo *templateRepository) GetTemplateByID(_ context.Context, id string) (template.Template, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, tpl := range repo.templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return template.Template{}, template.ErrNotFound
}

func (repo *templateRepository) UpdateTemplate(_ context.Context, tpl template.Template) (template.Template, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for i := range repo.templates {
		if repo.templates[i].ID == tpl.ID {
			repo.templates[i] = tpl
			return tpl, nil
		}
	}
	return template.Template{}, template.ErrNotFound
}

func (repo *templateRepository) DeleteTemplateByID(_ context.Context, id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	out := repo.templates[:0]
	for _, tpl := range repo.templates {
		if tpl.ID != id {
			out = append(out, tpl)
		}
	}
	repo.templates = out
	return nil
}
