package http

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"portfolio/internal/domain"
	"portfolio/internal/model"
	"portfolio/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

const contactReceived = "Message received! Thank you for your submission."

type Handler struct {
	store         usecase.Store
	validator     *model.Validator
	contact       *usecase.ContactService
	resume        *usecase.ResumeService
	resumePDFPath string
}

// NewHandler wires the handlers to their dependencies. resumePDFPath, when
// not empty, is served as /resume.pdf instead of rendering the portfolio.
func NewHandler(store usecase.Store, v *model.Validator, contact *usecase.ContactService, resume *usecase.ResumeService, resumePDFPath string) *Handler {
	return &Handler{store: store, validator: v, contact: contact, resume: resume, resumePDFPath: resumePDFPath}
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}

// bind validates the request body against the entity schema and decodes it.
func (h *Handler) bind(c *fiber.Ctx, e model.Entity, partial bool, dst interface{}) error {
	body := c.Body()
	var err error
	if partial {
		err = h.validator.ValidatePartial(e, body)
	} else {
		err = h.validator.Validate(e, body)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return model.ErrMalformed
	}
	return nil
}

func notFound(label string) error {
	return fiber.NewError(fiber.StatusNotFound, label+" not found")
}

// resource serves the uniform CRUD family of one entity.
type resource[T, In, P any] struct {
	entity model.Entity
	label  string
	list   func(c *fiber.Ctx) ([]T, error)
	get    func(ctx context.Context, id int64) (T, bool, error)
	create func(ctx context.Context, in In) (T, error)
	update func(ctx context.Context, id int64, p P) (T, bool, error)
	remove func(ctx context.Context, id int64) (bool, error)
}

func (r resource[T, In, P]) mount(h *Handler, router fiber.Router, path string) {
	router.Get(path, r.listAll)
	router.Post(path, func(c *fiber.Ctx) error { return r.createOne(h, c) })
	router.Get(path+"/:id", r.getOne)
	if r.update != nil {
		router.Patch(path+"/:id", func(c *fiber.Ctx) error { return r.updateOne(h, c) })
	}
	router.Delete(path+"/:id", r.deleteOne)
}

func (r resource[T, In, P]) listAll(c *fiber.Ctx) error {
	items, err := r.list(c)
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	return c.JSON(items)
}

func (r resource[T, In, P]) getOne(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	item, ok, err := r.get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(r.label)
	}
	return c.JSON(item)
}

func (r resource[T, In, P]) createOne(h *Handler, c *fiber.Ctx) error {
	var in In
	if err := h.bind(c, r.entity, false, &in); err != nil {
		return err
	}
	item, err := r.create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (r resource[T, In, P]) updateOne(h *Handler, c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var p P
	if err := h.bind(c, r.entity, true, &p); err != nil {
		return err
	}
	item, ok, err := r.update(c.UserContext(), id, p)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(r.label)
	}
	return c.JSON(item)
}

func (r resource[T, In, P]) deleteOne(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ok, err := r.remove(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(r.label)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) skills() resource[domain.Skill, domain.SkillInput, domain.SkillPatch] {
	return resource[domain.Skill, domain.SkillInput, domain.SkillPatch]{
		entity: model.Skill,
		label:  "Skill",
		list: func(c *fiber.Ctx) ([]domain.Skill, error) {
			if category := c.Query("category"); category != "" {
				return h.store.ListSkillsByCategory(c.UserContext(), category)
			}
			return h.store.ListSkills(c.UserContext())
		},
		get:    h.store.GetSkill,
		create: h.store.CreateSkill,
		update: h.store.UpdateSkill,
		remove: h.store.DeleteSkill,
	}
}

func (h *Handler) education() resource[domain.Education, domain.EducationInput, domain.EducationPatch] {
	return resource[domain.Education, domain.EducationInput, domain.EducationPatch]{
		entity: model.Education,
		label:  "Education",
		list:   func(c *fiber.Ctx) ([]domain.Education, error) { return h.store.ListEducation(c.UserContext()) },
		get:    h.store.GetEducation,
		create: h.store.CreateEducation,
		update: h.store.UpdateEducation,
		remove: h.store.DeleteEducation,
	}
}

func (h *Handler) experience() resource[domain.Experience, domain.ExperienceInput, domain.ExperiencePatch] {
	return resource[domain.Experience, domain.ExperienceInput, domain.ExperiencePatch]{
		entity: model.Experience,
		label:  "Experience",
		list:   func(c *fiber.Ctx) ([]domain.Experience, error) { return h.store.ListExperience(c.UserContext()) },
		get:    h.store.GetExperience,
		create: h.store.CreateExperience,
		update: h.store.UpdateExperience,
		remove: h.store.DeleteExperience,
	}
}

func (h *Handler) projects() resource[domain.Project, domain.ProjectInput, domain.ProjectPatch] {
	return resource[domain.Project, domain.ProjectInput, domain.ProjectPatch]{
		entity: model.Project,
		label:  "Project",
		list:   func(c *fiber.Ctx) ([]domain.Project, error) { return h.store.ListProjects(c.UserContext()) },
		get:    h.store.GetProject,
		create: h.store.CreateProject,
		update: h.store.UpdateProject,
		remove: h.store.DeleteProject,
	}
}

// Technologies are never updated in place.
func (h *Handler) technologies() resource[domain.Technology, domain.TechnologyInput, struct{}] {
	return resource[domain.Technology, domain.TechnologyInput, struct{}]{
		entity: model.Technology,
		label:  "Technology",
		list:   func(c *fiber.Ctx) ([]domain.Technology, error) { return h.store.ListTechnologies(c.UserContext()) },
		get:    h.store.GetTechnology,
		create: h.store.CreateTechnology,
		remove: h.store.DeleteTechnology,
	}
}

func (h *Handler) GetPersonalInfo(c *fiber.Ctx) error {
	info, ok, err := h.store.GetPersonalInfo(c.UserContext())
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Personal info")
	}
	return c.JSON(info)
}

func (h *Handler) UpdatePersonalInfo(c *fiber.Ctx) error {
	var in domain.PersonalInfoInput
	if err := h.bind(c, model.PersonalInfo, false, &in); err != nil {
		return err
	}
	info, err := h.store.UpdatePersonalInfo(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(info)
}

func (h *Handler) ListProjectTechnologies(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	techs, err := h.store.ListProjectTechnologies(c.UserContext(), id)
	if err != nil {
		return err
	}
	if techs == nil {
		techs = []domain.Technology{}
	}
	return c.JSON(techs)
}

func (h *Handler) AddTechnologyToProject(c *fiber.Ctx) error {
	link, err := parseLink(c)
	if err != nil {
		return err
	}
	ok, err := h.store.AddTechnologyToProject(c.UserContext(), link.ProjectID, link.TechnologyID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Project or technology")
	}
	return c.Status(fiber.StatusCreated).JSON(link)
}

func (h *Handler) RemoveTechnologyFromProject(c *fiber.Ctx) error {
	link, err := parseLink(c)
	if err != nil {
		return err
	}
	if err := h.store.RemoveTechnologyFromProject(c.UserContext(), link.ProjectID, link.TechnologyID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseLink(c *fiber.Ctx) (domain.ProjectTechnology, error) {
	pid, err := parseID(c, "pid")
	if err != nil {
		return domain.ProjectTechnology{}, err
	}
	tid, err := parseID(c, "tid")
	if err != nil {
		return domain.ProjectTechnology{}, err
	}
	return domain.ProjectTechnology{ProjectID: pid, TechnologyID: tid}, nil
}

func (h *Handler) SubmitContact(c *fiber.Ctx) error {
	msg, err := h.contact.Submit(c.UserContext(), c.Body())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": contactReceived, "id": msg.ID.String()})
}

func (h *Handler) DownloadResume(c *fiber.Ctx) error {
	if h.resumePDFPath != "" {
		return c.Download(h.resumePDFPath, filepath.Base(h.resumePDFPath))
	}
	pdf, name, err := h.resume.RenderPDF(c.UserContext())
	if err != nil {
		return fmt.Errorf("resume download: %w", err)
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
