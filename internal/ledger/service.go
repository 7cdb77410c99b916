/**
* Name: 			service.go
* Description: 		입력 -> 로컬 저장 -> 당일 목록 갱신, 그리고 Append-Sync
* Workflow: 		AddEntry / UpdateEntry / DeleteEntry / Today / Send
 */
package ledger

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"RieperLogistics_ScanLedger/internal/config"
	"RieperLogistics_ScanLedger/internal/csvexport"
	"RieperLogistics_ScanLedger/internal/models"
	"RieperLogistics_ScanLedger/internal/util"

	"github.com/sirupsen/logrus"
)

type RecordStore interface {
	AddRecord(ctx context.Context, r *models.Record) error
	UpdateRecord(ctx context.Context, r *models.Record) error
	DeleteRecord(ctx context.Context, id int64) error
	GetRecord(ctx context.Context, id int64) (models.Record, error)
	QueryByDateAndWorker(ctx context.Context, date, worker string) ([]models.Record, error)
	QueryByWorker(ctx context.Context, worker string) ([]models.Record, error)
	ClearRecords(ctx context.Context) error
}

type Uploader interface {
	Append(ctx context.Context, req models.AppendRequest) error
}

// 전송 결과 요약
type SendResult struct {
	Filename string `json:"filename"`
	Records  int    `json:"records"`
	LastSync string `json:"lastSync"`
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

type Service struct {
	store    RecordStore
	sessions config.SessionStore
	uploader Uploader
	logger   logrus.FieldLogger
	now      func() time.Time

	// 모든 저장소 작업을 직렬화한다. 전송 중 들어온 수정은 전송 결과가 정해질 때까지 대기.
	opMu    sync.Mutex
	session config.Session
	syncing atomic.Bool

	subMu       sync.Mutex
	subscribers map[int]func([]models.Record)
	nextSubID   int
}

func NewService(store RecordStore, sessions config.SessionStore, session config.Session, uploader Uploader, logger logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		store:       store,
		sessions:    sessions,
		session:     session,
		uploader:    uploader,
		logger:      logger,
		now:         time.Now,
		subscribers: make(map[int]func([]models.Record)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Session() config.Session {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.session
}

func (s *Service) SetWorker(ctx context.Context, worker string) (config.Session, error) {
	worker = strings.TrimSpace(worker)
	if worker == "" {
		return config.Session{}, &ConfigError{Field: "mitarbeiter", Message: "worker id (mitarbeiter) must not be empty"}
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	next := s.session
	next.Mitarbeiter = worker
	if err := s.sessions.SaveSession(ctx, next); err != nil {
		return s.session, err
	}
	s.session = next
	s.logger.WithField("worker", worker).Info("SetWorker(): worker id saved")

	// 작업자가 바뀌면 당일 목록도 바뀐다
	if view, err := s.todayLocked(ctx); err == nil {
		s.publish(view)
	}
	return next, nil
}

// 폼 값으로 새 레코드를 만들고 당일 목록을 돌려준다.
func (s *Service) AddEntry(ctx context.Context, in models.EntryInput) (models.Record, []models.Record, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	worker := s.session.Mitarbeiter
	if worker == "" {
		return models.Record{}, nil, errMissingWorker()
	}

	now := s.now()
	record := recordFromInput(in)
	record.Mitarbeiter = worker
	record.Date = util.Today(now)
	record.Timestamp = util.Timestamp(now)

	if err := s.store.AddRecord(ctx, &record); err != nil {
		config.LogError(s.logger, "ledger", "AddEntry", record, err)
		return models.Record{}, nil, err
	}

	view, err := s.todayLocked(ctx)
	if err != nil {
		return record, nil, err
	}
	s.publish(view)
	return record, view, nil
}

// 기존 레코드를 폼 값으로 교체. date/timestamp는 생성 시 값 유지.
func (s *Service) UpdateEntry(ctx context.Context, id int64, in models.EntryInput) (models.Record, []models.Record, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	worker := s.session.Mitarbeiter
	if worker == "" {
		return models.Record{}, nil, errMissingWorker()
	}

	record := recordFromInput(in)
	record.ID = id
	record.Mitarbeiter = worker

	if err := s.store.UpdateRecord(ctx, &record); err != nil {
		config.LogError(s.logger, "ledger", "UpdateEntry", id, err)
		return models.Record{}, nil, err
	}

	view, err := s.todayLocked(ctx)
	if err != nil {
		return record, nil, err
	}
	s.publish(view)
	return record, view, nil
}

func (s *Service) DeleteEntry(ctx context.Context, id int64) ([]models.Record, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.session.Mitarbeiter == "" {
		return nil, errMissingWorker()
	}
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		config.LogError(s.logger, "ledger", "DeleteEntry", id, err)
		return nil, err
	}

	view, err := s.todayLocked(ctx)
	if err != nil {
		return nil, err
	}
	s.publish(view)
	return view, nil
}

func (s *Service) Entry(ctx context.Context, id int64) (models.Record, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.store.GetRecord(ctx, id)
}

// 현재 작업자의 오늘 레코드
func (s *Service) Today(ctx context.Context) ([]models.Record, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.session.Mitarbeiter == "" {
		return nil, errMissingWorker()
	}
	return s.todayLocked(ctx)
}

// 보내지 않고 현재 배치의 CSV 페이로드만 만든다 (로컬 내보내기용)
func (s *Service) Export(ctx context.Context) (models.AppendRequest, []models.Record, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.session.Mitarbeiter == "" {
		return models.AppendRequest{}, nil, errMissingWorker()
	}
	records, err := s.store.QueryByWorker(ctx, s.session.Mitarbeiter)
	if err != nil {
		return models.AppendRequest{}, nil, err
	}
	return csvexport.Payload(records, s.session.Mitarbeiter, s.session.ClientID, s.now()), records, nil
}

// Send는 현재 작업자의 미전송 배치(날짜 무관)를 Append endpoint로 한 번 보낸다.
// 성공이 확인된 경우에만 로컬 저장소 전체를 비우고 lastSync를 갱신한다.
// 실패하면 로컬 배치는 그대로 남고, 자동 재시도는 하지 않는다.
func (s *Service) Send(ctx context.Context) (SendResult, error) {
	if !s.syncing.CompareAndSwap(false, true) {
		return SendResult{}, ErrSyncInProgress
	}
	defer s.syncing.Store(false)

	s.opMu.Lock()
	defer s.opMu.Unlock()

	session := s.session
	if session.Mitarbeiter == "" {
		return SendResult{}, errMissingWorker()
	}

	now := s.now()
	today := util.Today(now)

	// 전송 직전 한 번 조회한 값이 이번 배치의 스냅샷
	batch, err := s.store.QueryByWorker(ctx, session.Mitarbeiter)
	if err != nil {
		return SendResult{}, err
	}
	if len(batch) == 0 {
		return SendResult{}, ErrEmptyBatch
	}

	payload := csvexport.Payload(batch, session.Mitarbeiter, session.ClientID, now)
	log := s.logger.WithFields(logrus.Fields{
		"filename": payload.Filename,
		"records":  len(batch),
		"worker":   session.Mitarbeiter,
	})
	log.Info("Send(): uploading batch")

	if err := s.uploader.Append(ctx, payload); err != nil {
		log.WithError(err).Warn("Send(): upload failed, local batch kept")
		return SendResult{}, err
	}

	if err := s.store.ClearRecords(ctx); err != nil {
		// 원격에는 이미 기록됨. 다시 보내면 중복 행이 생길 수 있다.
		log.WithError(err).Error("Send(): remote append confirmed but local clear failed")
		return SendResult{}, err
	}

	session.LastSync = today
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		log.WithError(err).Error("Send(): failed to persist lastSync")
		return SendResult{}, err
	}
	s.session = session
	s.publish([]models.Record{})

	log.Info("Send(): batch appended and local store cleared")
	return SendResult{Filename: payload.Filename, Records: len(batch), LastSync: today}, nil
}

// 목록이 바뀔 때마다 fn이 호출된다. 반환된 함수로 구독 해지.
func (s *Service) Subscribe(fn func([]models.Record)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Service) publish(view []models.Record) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, fn := range s.subscribers {
		fn(view)
	}
}

func (s *Service) todayLocked(ctx context.Context) ([]models.Record, error) {
	return s.store.QueryByDateAndWorker(ctx, util.Today(s.now()), s.session.Mitarbeiter)
}

func recordFromInput(in models.EntryInput) models.Record {
	return models.Record{
		Barcode:   strings.TrimSpace(in.Barcode),
		Spedition: in.Spedition,
		Artikel:   in.Artikel,
		Bemerkung: in.Bemerkung,
		Hundert:   util.SanitizeNumber(in.Hundert),
		Fuenfzig:  util.SanitizeNumber(in.Fuenfzig),
		Info:      in.Info,
	}
}
