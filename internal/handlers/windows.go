package handlers

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attune/internal/classifier"
	"attune/internal/config"
	"attune/internal/features"
	"attune/internal/ingest"
	"attune/internal/models"
	"attune/internal/repository"
)

type WindowHandler struct {
	log        *zap.Logger
	classifier *classifier.Client
	layouts    *models.LayoutSet
}

func NewWindowHandler(log *zap.Logger, cls *classifier.Client, layouts *models.LayoutSet) *WindowHandler {
	return &WindowHandler{log: log, classifier: cls, layouts: layouts}
}

// contentAOIs resolves the content layout for a window. Unknown content falls
// back to the paragraph-name guess, which makes the environment ratio a rough
// estimate at best; known content should always be in the layouts file.
func (h *WindowHandler) contentAOIs(contentID string) []string {
	if h.layouts != nil {
		if aois, ok := h.layouts.ContentAOIs(contentID); ok {
			return aois
		}
	}
	h.log.Debug("No layout for content, using default content AOIs", zap.String("content_id", contentID))
	return features.DefaultContentAOIs()
}

func (h *WindowHandler) thresholds() features.Thresholds {
	det := config.Detection()
	return features.Thresholds{
		Distance: det.DistanceThreshold,
		Duration: det.DurationThreshold,
	}
}

// AnalyzeWindow ingests one observation window, reduces it to features, asks
// the classifier for an affective state, and persists the lot.
func (h *WindowHandler) AnalyzeWindow(c *gin.Context) {
	window, feats, ok := h.decodeAndExtract(c)
	if !ok {
		return
	}

	prediction, err := h.classifier.Predict(c.Request.Context(), feats.Map())
	if err != nil {
		h.log.Error("Classifier unavailable", zap.String("window_id", window.WindowID), zap.Error(err))
		// The window is still worth keeping for training even without a verdict.
		h.persist(window, feats, nil)
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": "classifier unavailable"})
		return
	}

	h.log.Info("Window analyzed",
		zap.String("window_id", window.WindowID),
		zap.Int("gaze_samples", len(window.GazeLog)),
		zap.Int("state_id", prediction.StateID),
		zap.String("state", prediction.Label))

	h.persist(window, feats, prediction)

	c.JSON(http.StatusOK, gin.H{
		"status":              "success",
		"window_id":           window.WindowID,
		"state_id":            prediction.StateID,
		"state":               prediction.Label,
		"intervention_needed": prediction.InterventionNeeded,
		"features":            feats,
	})
}

// ExtractFeatures reduces a window to features without consulting the
// classifier. Used by collection sessions that only feed the feature store.
func (h *WindowHandler) ExtractFeatures(c *gin.Context) {
	window, feats, ok := h.decodeAndExtract(c)
	if !ok {
		return
	}

	h.persist(window, feats, nil)

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"window_id": window.WindowID,
		"features":  feats,
	})
}

func (h *WindowHandler) decodeAndExtract(c *gin.Context) (*models.Window, models.WindowFeatures, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Error("Failed to read window payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "unreadable payload"})
		return nil, models.WindowFeatures{}, false
	}

	window, err := ingest.DecodeWindow(raw)
	if err != nil {
		h.log.Warn("Rejected window payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return nil, models.WindowFeatures{}, false
	}

	feats := features.Extract(window, h.thresholds(), h.contentAOIs(window.ContentID))
	return window, feats, true
}

// persist writes the window, its feature row, and an optional prediction.
// Storage failures are logged but never fail the response; the verdict has
// already been computed and belongs to the client.
func (h *WindowHandler) persist(window *models.Window, feats models.WindowFeatures, prediction *classifier.Prediction) {
	gazeLog, _ := json.Marshal(window.GazeLog)
	interactions, _ := json.Marshal(window.Interactions)
	heartRate, _ := json.Marshal(window.HeartRate)

	record := &models.ObservationWindow{
		ID:           window.WindowID,
		SessionID:    window.SessionID,
		ContentID:    window.ContentID,
		GazeLog:      gazeLog,
		Interactions: interactions,
		HeartRate:    heartRate,
	}

	row := &models.WindowFeatureRow{
		SessionID:            window.SessionID,
		ContentID:            window.ContentID,
		MeanFixationDuration: feats.MeanFixationDuration,
		NumOfFixations:       feats.NumOfFixations,
		MeanSaccadeDuration:  feats.MeanSaccadeDuration,
		Bpm:                  feats.Bpm,
		RereadFrequency:      feats.RereadFrequency,
		EnvFixationRatio:     feats.EnvFixationRatio,
		ClickCount:           feats.ClickCount,
	}

	var predictionRecord *models.Prediction
	if prediction != nil {
		predictionRecord = &models.Prediction{
			StateID:            prediction.StateID,
			StateLabel:         prediction.Label,
			InterventionNeeded: prediction.InterventionNeeded,
		}
	}

	if err := repository.SaveWindowResult(record, row, predictionRecord); err != nil {
		h.log.Error("Failed to save window result", zap.String("window_id", window.WindowID), zap.Error(err))
	}
}

// ExportFeaturesCSV streams the feature store as the tabular file the
// training pipeline reads.
func (h *WindowHandler) ExportFeaturesCSV(c *gin.Context) {
	rows, err := repository.ListFeatureRows()
	if err != nil {
		h.log.Error("Failed to list feature rows", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "export failed"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="features.csv"`)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	w.Write([]string{
		"window_id", "session_id", "content_id",
		models.KeyMeanFixationDuration, models.KeyNumOfFixations,
		models.KeyMeanSaccadeDuration, models.KeyBpm,
		models.KeyRereadFrequency, models.KeyEnvFixationRatio, models.KeyClickCount,
	})

	for _, row := range rows {
		w.Write([]string{
			row.WindowID, row.SessionID, row.ContentID,
			formatFloat(row.MeanFixationDuration), formatFloat(row.NumOfFixations),
			formatFloat(row.MeanSaccadeDuration), formatFloat(row.Bpm),
			formatFloat(row.RereadFrequency), formatFloat(row.EnvFixationRatio),
			formatFloat(row.ClickCount),
		})
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SessionTimeline returns one feature's stored values across a session.
func (h *WindowHandler) SessionTimeline(c *gin.Context) {
	sessionID := c.Param("id")
	featureKey := c.DefaultQuery("feature", models.KeyMeanFixationDuration)

	points, err := repository.FeatureTimeline(sessionID, featureKey)
	if err != nil {
		h.log.Error("Failed to query feature timeline",
			zap.String("session_id", sessionID),
			zap.String("feature", featureKey),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"feature":    featureKey,
		"points":     points,
	})
}

// Health reports service liveness and whether the classifier is reachable.
func (h *WindowHandler) Health(c *gin.Context) {
	classifierStatus := "up"
	if err := h.classifier.Health(c.Request.Context()); err != nil {
		h.log.Warn("Classifier health check failed", zap.Error(err))
		classifierStatus = "down"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"classifier": classifierStatus,
	})
}
