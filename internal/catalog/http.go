package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"CourseCatalog/pkg/kit"
)

var tracer = otel.Tracer("CourseCatalog/internal/catalog")

const (
	addLimitPerMin = 10
	limitWindow    = 60 * time.Second
)

type Server struct {
	Store   Store
	Log     *zap.Logger
	Flashes *Flashes
	Metrics *Metrics
}

type indexPage struct {
	Flashes []Flash
}

type catalogPage struct {
	Flashes []Flash
	Courses []Course
}

type detailsPage struct {
	Flashes []Flash
	Course  Course
}

type addPage struct {
	Flashes []Flash
	Course  Course
	Missing []string
}

type errorPage struct {
	Message string
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	addLimiter := kit.NewIPRateLimiter(addLimitPerMin, int(limitWindow.Seconds()))

	r.Get("/", s.index)
	r.Get("/catalog", s.courseCatalog)
	r.Get("/courses/new", s.addCourseForm)
	r.With(addLimiter.Middleware).Post("/courses/new", s.addCourse)
	r.Get("/courses/{code}", s.courseDetails)

	r.Get("/api/courses", s.apiList)
	r.Get("/api/courses/{code}", s.apiGet)

	return r
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index.html", indexPage{Flashes: s.Flashes.Pop(w, r)})
}

func (s *Server) courseCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "render course catalog")
	defer span.End()
	span.SetAttributes(requestAttrs(r, "/catalog")...)

	loadCtx, loadSpan := tracer.Start(ctx, "load courses")
	courses, err := s.Store.LoadAll(loadCtx)
	if err != nil {
		loadSpan.RecordError(err)
		loadSpan.End()
		s.serverError(w, "load catalog failed", err)
		return
	}
	loadSpan.SetAttributes(attribute.Int("catalog.total_courses", len(courses)))
	loadSpan.End()

	span.SetAttributes(attribute.Int("catalog.total_courses", len(courses)))
	if s.Metrics != nil {
		s.Metrics.CatalogVisits.Inc()
	}

	s.render(w, http.StatusOK, "course_catalog.html", catalogPage{
		Flashes: s.Flashes.Pop(w, r),
		Courses: courses,
	})
}

func (s *Server) courseDetails(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	ctx, span := tracer.Start(r.Context(), "view course details")
	defer span.End()
	span.SetAttributes(requestAttrs(r, "/courses/{code}")...)
	span.SetAttributes(attribute.String("course.code", code))

	course, ok, err := s.Store.FindByCode(ctx, code)
	if err != nil {
		span.RecordError(err)
		s.serverError(w, "find course failed", err)
		return
	}

	span.SetAttributes(attribute.Bool("course.found", ok))
	if !ok {
		span.SetStatus(codes.Error, "no course found for code "+code)
		s.Flashes.Add(w, r, "error", fmt.Sprintf("No course found with code %q.", code))
		http.Redirect(w, r, "/catalog", http.StatusSeeOther)
		return
	}

	s.render(w, http.StatusOK, "course_details.html", detailsPage{
		Flashes: s.Flashes.Pop(w, r),
		Course:  course,
	})
}

func (s *Server) addCourseForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "add_course.html", addPage{Flashes: s.Flashes.Pop(w, r)})
}

func (s *Server) addCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "add course")
	defer span.End()
	span.SetAttributes(requestAttrs(r, "/courses/new")...)

	if err := r.ParseForm(); err != nil {
		span.RecordError(err)
		// Rendered in this same response, so the notice goes straight to the
		// page instead of through the flash store.
		flashes := append(s.Flashes.Pop(w, r),
			Flash{Category: "error", Message: "Could not read the submitted form."})
		s.render(w, http.StatusBadRequest, "add_course.html", addPage{Flashes: flashes})
		return
	}

	// Values are persisted verbatim: presence is the only check.
	course := Course{
		Code:          r.PostFormValue("code"),
		Name:          r.PostFormValue("name"),
		Instructor:    r.PostFormValue("instructor"),
		Semester:      r.PostFormValue("semester"),
		Schedule:      r.PostFormValue("schedule"),
		Classroom:     r.PostFormValue("classroom"),
		Prerequisites: r.PostFormValue("prerequisites"),
		Grading:       r.PostFormValue("grading"),
		Description:   r.PostFormValue("description"),
	}
	span.SetAttributes(
		attribute.String("course.code", course.Code),
		attribute.String("course.name", course.Name),
	)

	missing := course.MissingRequired()
	if len(missing) > 0 {
		span.SetAttributes(attribute.StringSlice("course.missing_fields", missing))
		if s.Metrics != nil {
			s.Metrics.ValidationFailures.Inc()
		}
		if s.Log != nil {
			s.Log.Error("add course rejected", zap.Strings("missing_fields", missing))
		}

		flashes := append(s.Flashes.Pop(w, r), Flash{
			Category: "error",
			Message:  "Please fill in all the required fields. Missing: " + strings.Join(missing, ", "),
		})
		s.render(w, http.StatusUnprocessableEntity, "add_course.html", addPage{
			Flashes: flashes,
			Course:  course,
			Missing: missing,
		})
		return
	}

	saveCtx, saveSpan := tracer.Start(ctx, "save course")
	err := s.Store.Append(saveCtx, course)
	if err != nil {
		saveSpan.RecordError(err)
		saveSpan.End()
		s.serverError(w, "save course failed", err)
		return
	}
	saveSpan.SetAttributes(attribute.Bool("course.saved", true))
	saveSpan.End()

	if s.Log != nil {
		s.Log.Info("course added",
			zap.String("code", course.Code),
			zap.String("name", course.Name),
		)
	}

	s.Flashes.Add(w, r, "success", fmt.Sprintf("Course %q added successfully!", course.Name))
	http.Redirect(w, r, "/catalog", http.StatusSeeOther)
}

func (s *Server) apiList(w http.ResponseWriter, r *http.Request) {
	courses, err := s.Store.LoadAll(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list courses failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, courses)
}

func (s *Server) apiGet(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	course, ok, err := s.Store.FindByCode(r.Context(), code)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get course failed", zap.Error(err), zap.String("code", code))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"code": code})
		return
	}
	kit.WriteJSON(w, http.StatusOK, course)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil && s.Log != nil {
		s.Log.Error("render failed", zap.String("template", name), zap.Error(err))
	}
}

// serverError is the uncaught-failure path for store errors: log, 500 page,
// no recovery.
func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err))
	}
	s.render(w, http.StatusInternalServerError, "error.html", errorPage{Message: "server error"})
}

func requestAttrs(r *http.Request, route string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("http.route", route),
		attribute.String("http.method", r.Method),
		attribute.String("client.address", kit.ClientIP(r)),
	}
}
