// internal/api/linkbudget.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/signalsfoundry/satlink-simulator/atmosphere"
	"github.com/signalsfoundry/satlink-simulator/budget"
	"github.com/signalsfoundry/satlink-simulator/internal/logging"
	"github.com/signalsfoundry/satlink-simulator/modem"
)

// handleLinkBudget evaluates a single-point budget without running a pass
// simulation.
func (s *Server) handleLinkBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.LoggerFromContext(ctx)
	if log == nil {
		log = s.log
	}

	var req LinkBudgetRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(ctx, w, log, fmt.Errorf("%w: decode body: %v", ErrInvalidRequest, err))
		return
	}

	required, err := requiredEbN0(req)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	atmLoss, err := atmosphericLoss(req)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	if req.Receiver.SystemNoiseTempK <= 0 {
		writeError(ctx, w, log, fmt.Errorf("%w: receiver.system_noise_temp_k must be positive, got %g K",
			ErrInvalidRequest, req.Receiver.SystemNoiseTempK))
		return
	}

	ev := budget.Evaluator{
		Tx: budget.TransmitterFromDBm(
			req.Transmitter.PowerDBm,
			req.Transmitter.AntennaGainDBi,
			req.Transmitter.FeedLossDB,
			req.Transmitter.PointingLossDB,
			req.Transmitter.OtherLossDB,
		),
		Rx: budget.ReceiverChain{
			AntennaGainDBi:   req.Receiver.AntennaGainDBi,
			SystemNoiseTempK: req.Receiver.SystemNoiseTempK,
			FeedLossDB:       req.Receiver.FeedLossDB,
			PointingLossDB:   req.Receiver.PointingLossDB,
			OtherLossDB:      req.Receiver.OtherLossDB,
		},
		DataRateBps:        req.DataRateBps,
		RequiredEbN0DB:     required,
		PolarizationLossDB: req.PolarizationLossDB,
		MiscLossDB:         req.MiscLossDB,
	}

	res, err := ev.Detail(req.FrequencyHz, req.DistanceM, atmLoss)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, linkBudgetResponseFromResult(res))
}

// requiredEbN0 resolves the demodulation threshold from either the direct
// field or a modem block, rejecting ambiguous requests.
func requiredEbN0(req LinkBudgetRequest) (float64, error) {
	switch {
	case req.RequiredEbN0DB != nil && req.Modem != nil:
		return 0, fmt.Errorf("%w: required_ebn0_db and modem are mutually exclusive", ErrInvalidRequest)
	case req.RequiredEbN0DB != nil:
		return *req.RequiredEbN0DB, nil
	case req.Modem != nil:
		mod, err := modem.ModulationByName(req.Modem.Modulation)
		if err != nil {
			return 0, err
		}
		codingName := req.Modem.Coding
		if codingName == "" {
			codingName = "uncoded"
		}
		cod, err := modem.CodingByName(codingName)
		if err != nil {
			return 0, err
		}
		mc := modem.Config{
			Modulation:           mod,
			Coding:               cod,
			ImplementationLossDB: req.Modem.ImplementationLossDB,
		}
		return mc.RequiredEbN0DB(modem.DefaultTargetBER), nil
	default:
		return 0, fmt.Errorf("%w: one of required_ebn0_db or modem is required", ErrInvalidRequest)
	}
}

// atmosphericLoss resolves the attenuation term: a direct dB figure, or a
// loss-model evaluation at the request's elevation.
func atmosphericLoss(req LinkBudgetRequest) (float64, error) {
	if req.Atmosphere == nil {
		if req.AtmosphericLossDB < 0 {
			return 0, fmt.Errorf("%w: atmospheric_loss_db must be non-negative, got %g dB",
				ErrInvalidRequest, req.AtmosphericLossDB)
		}
		return req.AtmosphericLossDB, nil
	}

	if req.AtmosphericLossDB != 0 {
		return 0, fmt.Errorf("%w: atmospheric_loss_db and atmosphere are mutually exclusive", ErrInvalidRequest)
	}
	if req.ElevationDeg <= 0 || req.ElevationDeg > 90 {
		return 0, fmt.Errorf("%w: elevation_deg must be in (0, 90] when atmosphere is given, got %g",
			ErrInvalidRequest, req.ElevationDeg)
	}

	cond := atmosphere.DefaultConditions()
	cond.RainRateMMH = req.Atmosphere.RainRate001MmH
	if req.Atmosphere.LatitudeDeg != 0 {
		cond.LatitudeDeg = req.Atmosphere.LatitudeDeg
	}
	cond.WaterKgM2 = req.Atmosphere.LiquidWaterContentKgM2
	cond.IncludeScintillation = req.Atmosphere.IncludeScintillation

	model, err := atmosphere.NewModel(cond)
	if err != nil {
		return 0, err
	}
	return model.TotalLossDB(req.FrequencyHz, req.ElevationDeg)
}
