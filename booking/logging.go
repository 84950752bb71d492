package booking

import (
	"time"

	"github.com/go-kit/kit/log"

	"github.com/Qalifah/freightbooking/addon"
	"github.com/Qalifah/freightbooking/cargo"
	"github.com/Qalifah/freightbooking/pricing"
)

type loggingService struct {
	logger log.Logger
	Service
}

// NewLoggingService creates a new instance of the logging service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{logger, s}
}

func (s *loggingService) NewSession() (sess Session, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "new_session",
			"session_id", sess.ID,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.NewSession()
}

func (s *loggingService) LoadSession(id SessionID) (sess Session, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "load_session",
			"session_id", id,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.LoadSession(id)
}

func (s *loggingService) Search(id SessionID, r cargo.Request) (sess Session, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "search",
			"session_id", id,
			"origin", r.Origin,
			"origin_type", r.OriginKind,
			"destination", r.Destination,
			"destination_type", r.DestinationKind,
			"step", sess.Step,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.Search(id, r)
}

func (s *loggingService) AddPort(id SessionID, leg Leg, query string) (sess Session, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "add_port",
			"session_id", id,
			"leg", leg,
			"query", query,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.AddPort(id, leg, query)
}

func (s *loggingService) ToggleGateway(id SessionID, leg Leg, port string) (sess Session, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "toggle_gateway",
			"session_id", id,
			"leg", leg,
			"port", port,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.ToggleGateway(id, leg, port)
}

func (s *loggingService) SetScenario(id SessionID, sc pricing.Scenario) (sess Session, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "set_scenario",
			"session_id", id,
			"origin_type", sc.Origin,
			"destination_type", sc.Destination,
			"customs", sc.IncludeCustoms,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.SetScenario(id, sc)
}

func (s *loggingService) SelectSchedule(id SessionID, scheduleID string) (sess Session, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "select_schedule",
			"session_id", id,
			"schedule_id", scheduleID,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.SelectSchedule(id, scheduleID)
}

func (s *loggingService) ToggleAddon(id SessionID, a addon.ID) (sess Session, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "toggle_addon",
			"session_id", id,
			"addon", a,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.ToggleAddon(id, a)
}

func (s *loggingService) UpdateParties(id SessionID, p cargo.Parties) (sess Session, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "update_parties",
			"session_id", id,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.UpdateParties(id, p)
}

func (s *loggingService) Proceed(id SessionID) (sess Session, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "proceed",
			"session_id", id,
			"step", sess.Step,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.Proceed(id)
}

func (s *loggingService) Back(id SessionID) (sess Session, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "back",
			"session_id", id,
			"step", sess.Step,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.Back(id)
}

func (s *loggingService) Confirm(id SessionID) (b cargo.Booking, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "confirm",
			"session_id", id,
			"reference", b.Reference,
			"total_price", b.TotalPrice,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.Confirm(id)
}

func (s *loggingService) LoadBooking(ref cargo.Reference) (b cargo.Booking, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "load_booking",
			"reference", ref,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.LoadBooking(ref)
}

func (s *loggingService) Bookings() []cargo.Booking {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "list_bookings",
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.Service.Bookings()
}

func (s *loggingService) Addons() []addon.Addon {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "list_addons",
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.Service.Addons()
}
