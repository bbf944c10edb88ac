package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/hanvion/healthcost/internal/calculation"
	"github.com/hanvion/healthcost/internal/compare"
	"github.com/hanvion/healthcost/internal/config"
	"github.com/hanvion/healthcost/internal/domain"
	"go.uber.org/zap"
)

// Handler serves the calculators over HTTP
type Handler struct {
	engine   *calculation.Engine
	compare  *compare.CompareEngine
	log      *zap.Logger
	validate *validator.Validate
}

// NewHandler creates a handler over the given engine
func NewHandler(engine *calculation.Engine, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		engine:   engine,
		compare:  compare.NewCompareEngine(engine),
		log:      log,
		validate: newValidator(),
	}
}

func (h *Handler) decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", errBadRequest, err)
	}
	return h.validate.Struct(dst)
}

func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "ok", nil)
}

func (h *Handler) SimulateVisit(w http.ResponseWriter, r *http.Request) {
	var req VisitSimulationRequest
	if err := h.decode(r, &req); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	vt, _ := domain.ParseVisitType(req.VisitType)
	result := h.engine.SimulateVisitPayment(vt, req.coverage())
	writeSuccess(w, http.StatusOK, "visit simulated", VisitSimulationResponse{
		VisitPaymentResult: result,
		Label:              vt.Label(),
		Unallocated:        result.Unallocated(),
	})
}

func (h *Handler) EstimateAnnual(w http.ResponseWriter, r *http.Request) {
	var req AnnualEstimateRequest
	if err := h.decode(r, &req); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	result := h.engine.EstimateAnnualSpend(req.usage())
	writeSuccess(w, http.StatusOK, "annual spend estimated", AnnualEstimateResponse{
		AnnualSpendResult: result,
		Savings:           result.Savings(),
	})
}

func (h *Handler) Likelihood(w http.ResponseWriter, r *http.Request) {
	var req LikelihoodRequest
	if err := h.decode(r, &req); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	result := h.engine.InsuranceLikelihood(domain.LikelihoodInput{Age: req.Age, Sex: req.Sex, State: req.State})
	writeSuccess(w, http.StatusOK, "likelihood estimated", result)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := h.decode(r, &req); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	result, err := h.engine.AssessHealthProfile(req.input())
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	resp := ProfileResponse{HealthProfileResult: result}
	if len(result.Recommendations) == 0 {
		resp.Message = calculation.HealthyBalanceMessage
	}
	writeSuccess(w, http.StatusOK, "profile assessed", resp)
}

func (h *Handler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "", h.engine.Tables.Symptoms())
}

func (h *Handler) GetSymptom(w http.ResponseWriter, r *http.Request) {
	symptom, err := h.engine.LookupSymptom(pathParam(r, "name"))
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", symptom)
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "", h.engine.ServiceCostSummaries())
}

func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.ServiceCostSummary(pathParam(r, "name"))
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", summary)
}

func (h *Handler) ListMedications(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "", h.engine.Tables.Medications())
}

func (h *Handler) GetMedication(w http.ResponseWriter, r *http.Request) {
	med, err := h.engine.Tables.Medication(pathParam(r, "name"))
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", med)
}

func (h *Handler) SearchProcedures(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	procs := h.engine.SearchProcedures(q.Get("q"), q.Get("setting"))
	views := make([]ProcedureView, len(procs))
	for i, p := range procs {
		views[i] = ProcedureView{Procedure: p, PriceSpread: p.PriceSpread(), VariationRatio: p.VariationRatio()}
	}
	writeSuccess(w, http.StatusOK, "", ProceduresResponse{
		Settings:   h.engine.ProcedureSettings(),
		Procedures: views,
	})
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.engine.Tables.State(pathParam(r, "state"))
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", state)
}

// checkScenario rejects scenarios that point at server-side files and runs
// the same validation as scenario files.
func (h *Handler) checkScenario(cfg *domain.Configuration) error {
	if cfg.Reference != (domain.ReferenceSources{}) {
		return fmt.Errorf("%w: referenceData is not accepted over HTTP", errBadRequest)
	}
	if err := config.NewInputParserWithTables(h.engine.Tables).ValidateConfiguration(cfg); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (h *Handler) EstimateScenario(w http.ResponseWriter, r *http.Request) {
	var cfg domain.Configuration
	if err := h.decode(r, &cfg); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if err := h.checkScenario(&cfg); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	report, err := h.engine.RunScenario(r.Context(), &cfg)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "scenario estimated", report)
}

func (h *Handler) CompareScenario(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := h.decode(r, &req); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if err := h.checkScenario(&req.Scenario); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	set, err := h.compare.Compare(r.Context(), &req.Scenario, compare.CompareOptions{
		Templates:  req.Templates,
		Transforms: req.Transforms,
	})
	if err != nil {
		if r.Context().Err() == nil {
			err = fmt.Errorf("%w: %v", errBadRequest, err)
		}
		writeError(h.log, w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "scenarios compared", set)
}
