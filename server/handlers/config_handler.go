package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"staffing-server/historical"
	services "staffing-server/service"
)

// ConfigHandler serves the historical-config read/write and bulk apply surface.
type ConfigHandler struct {
	configService    *services.HistoricalConfigService
	bulkApplyService *services.BulkApplyService
}

func NewConfigHandler(
	configService *services.HistoricalConfigService,
	bulkApplyService *services.BulkApplyService,
) *ConfigHandler {
	return &ConfigHandler{
		configService:    configService,
		bulkApplyService: bulkApplyService,
	}
}

// referenceSpec is the wire form of a historical reference: exactly one of
// weeks or mapping must be set.
type referenceSpec struct {
	TargetWeek string            `json:"target_week"`
	Weeks      []string          `json:"weeks,omitempty"`
	Mapping    map[string]string `json:"mapping,omitempty"`
}

func (spec referenceSpec) toEntry() (historical.Entry, bool) {
	switch {
	case len(spec.Weeks) > 0 && len(spec.Mapping) == 0:
		return historical.Entry{Kind: historical.KindWeekList, Weeks: spec.Weeks}, true
	case len(spec.Mapping) > 0 && len(spec.Weeks) == 0:
		return historical.Entry{Kind: historical.KindDayMapping, Mapping: spec.Mapping}, true
	default:
		return historical.Entry{}, false
	}
}

type bulkApplyRequest struct {
	referenceSpec
	StoreIDs  []string `json:"store_ids"`
	SessionID string   `json:"session_id,omitempty"`
}

// GetHistoricalConfig handles GET /v1/stores/{storeId}/historical-config
func (h *ConfigHandler) GetHistoricalConfig(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]

	raw, err := h.configService.GetRawConfig(r.Context(), storeID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if raw == "" {
		raw = "{}"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"store_id": storeID,
		"config":   json.RawMessage(raw),
	})
}

// PutHistoricalConfig handles PUT /v1/stores/{storeId}/historical-config
func (h *ConfigHandler) PutHistoricalConfig(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]

	var spec referenceSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	entry, ok := spec.toEntry()
	if !ok {
		http.Error(w, "Exactly one of weeks or mapping must be set", http.StatusBadRequest)
		return
	}

	if err := h.configService.SetReference(r.Context(), storeID, spec.TargetWeek, entry); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"store_id":    storeID,
		"target_week": spec.TargetWeek,
		"status":      "updated",
	})
}

// BulkApply handles POST /v1/stores/bulk-config
func (h *ConfigHandler) BulkApply(w http.ResponseWriter, r *http.Request) {
	var req bulkApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.StoreIDs) == 0 {
		http.Error(w, "store_ids must not be empty", http.StatusBadRequest)
		return
	}
	entry, ok := req.toEntry()
	if !ok {
		http.Error(w, "Exactly one of weeks or mapping must be set", http.StatusBadRequest)
		return
	}

	result, err := h.bulkApplyService.ApplyToMany(r.Context(), req.SessionID, req.StoreIDs, req.TargetWeek, entry)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
