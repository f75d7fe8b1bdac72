package main

import (
	"encoding/json"
	"net/http"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

type scoreReader interface {
	Score(hotkey string) (float64, bool, error)
	All() (map[string]float64, error)
}

type scoreResponse struct {
	Hotkey string  `json:"hotkey"`
	Score  float64 `json:"score"`
}

func registerScoreRoutes(gw *gwruntime.ServeMux, board scoreReader, logger *zap.Logger) error {
	if err := gw.HandlePath(http.MethodGet, "/v1/scores", func(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
		scores, err := board.All()
		if err != nil {
			logger.Error("read scores", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "scoreboard unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, scores)
	}); err != nil {
		return err
	}

	return gw.HandlePath(http.MethodGet, "/v1/scores/{hotkey}", func(w http.ResponseWriter, _ *http.Request, params map[string]string) {
		hotkey := params["hotkey"]
		score, ok, err := board.Score(hotkey)
		switch {
		case err != nil:
			logger.Error("read score", zap.String("hotkey", hotkey), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "scoreboard unavailable"})
		case !ok:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown hotkey"})
		default:
			writeJSON(w, http.StatusOK, scoreResponse{Hotkey: hotkey, Score: score})
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
