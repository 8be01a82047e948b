package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"strconv"

	"github.com/rook-computer/pixelsky/internal/sky"
)

const maxControlBody = 4 << 10

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type statusResponse struct {
	Phase string `json:"phase"`
	Error string `json:"error,omitempty"`

	Rendered  uint64  `json:"rendered"`
	Throttled uint64  `json:"throttled"`
	Suspended uint64  `json:"suspended"`
	Skipped   uint64  `json:"skipped"`
	LastDT    float64 `json:"lastDtMs"`
	Passes    string  `json:"passes"`

	Width        int  `json:"width"`
	Height       int  `json:"height"`
	Stars        int  `json:"stars"`
	Clouds       int  `json:"clouds"`
	Particles    int  `json:"particles"`
	ShootingStar bool `json:"shootingStar"`

	Visible       bool   `json:"visible"`
	ReducedMotion bool   `json:"reducedMotion"`
	Device        string `json:"device"`
	HUD           bool   `json:"hud"`
	Frame         uint64 `json:"frame"`
	PreviewURL    string `json:"previewUrl,omitempty"`
}

type motionRequest struct {
	Reduced *bool `json:"reduced"`
}

type visibilityRequest struct {
	Visible *bool `json:"visible"`
}

type deviceRequest struct {
	Device string `json:"device"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, deps) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	mux.HandleFunc("/motion", func(w http.ResponseWriter, r *http.Request) { handleMotion(w, r, deps) })
	mux.HandleFunc("/visibility", func(w http.ResponseWriter, r *http.Request) { handleVisibility(w, r, deps) })
	mux.HandleFunc("/device", func(w http.ResponseWriter, r *http.Request) { handleDevice(w, r, deps) })
	return mux
}

func handleStatus(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	snap := deps.State.Snapshot()
	st := snap.Sky
	writeJSON(w, http.StatusOK, statusResponse{
		Phase:         snap.Phase.String(),
		Error:         snap.Err,
		Rendered:      st.Rendered,
		Throttled:     st.Throttled,
		Suspended:     st.Suspended,
		Skipped:       st.Skipped,
		LastDT:        st.LastDT,
		Passes:        st.LastPasses.String(),
		Width:         st.Width,
		Height:        st.Height,
		Stars:         st.Stars,
		Clouds:        st.Clouds,
		Particles:     st.Particles,
		ShootingStar:  st.ShootingStar,
		Visible:       st.Visible,
		ReducedMotion: st.ReducedMotion,
		Device:        st.Device.String(),
		HUD:           snap.HUD,
		Frame:         snap.Frame,
		PreviewURL:    snap.Preview.URL,
	})
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	img, seq := deps.State.Frame()
	if img == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "no frame rendered yet")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Frame-Seq", strconv.FormatUint(seq, 10))
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	if err := png.Encode(w, img); err != nil {
		deps.Logger.Errorf("web", "encode frame %d: %v", seq, err)
	}
}

func handleMotion(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	var req motionRequest
	if !decodeControl(w, r, &req) {
		return
	}
	if req.Reduced == nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", `field "reduced" is required`)
		return
	}
	postEvent(w, deps, sky.ReducedMotionEvent{Reduced: *req.Reduced})
}

func handleVisibility(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	var req visibilityRequest
	if !decodeControl(w, r, &req) {
		return
	}
	if req.Visible == nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", `field "visible" is required`)
		return
	}
	postEvent(w, deps, sky.VisibilityEvent{Visible: *req.Visible})
}

func handleDevice(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	var req deviceRequest
	if !decodeControl(w, r, &req) {
		return
	}
	class, err := parseDeviceClass(req.Device)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_device", err.Error())
		return
	}
	postEvent(w, deps, sky.DeviceClassEvent{Class: class})
}

func parseDeviceClass(name string) (sky.DeviceClass, error) {
	switch name {
	case "desktop":
		return sky.Desktop, nil
	case "mobile":
		return sky.Mobile, nil
	default:
		return 0, fmt.Errorf("device must be desktop or mobile (got %q)", name)
	}
}

// decodeControl checks the method and decodes a small JSON body into v.
func decodeControl(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return false
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxControlBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		msg := err.Error()
		if errors.Is(err, io.EOF) {
			msg = "empty body"
		}
		writeAPIError(w, http.StatusBadRequest, "invalid_body", msg)
		return false
	}
	return true
}

func postEvent(w http.ResponseWriter, deps APIV1Deps, ev sky.Event) {
	if !deps.Events.Post(ev) {
		writeAPIError(w, http.StatusServiceUnavailable, "not_accepted", "render loop did not accept the event")
		return
	}
	deps.Logger.Infof("web", "queued %T", ev)
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
