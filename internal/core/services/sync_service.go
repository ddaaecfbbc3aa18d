package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/core/ports"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/platform/metrics"
	"github.com/hfa-project/home_finance_app/internal/vault"
)

// connectionOutcome is the result of one connection's pipeline run, collected
// by the orchestrator into the aggregate result.
type connectionOutcome struct {
	detail domain.ConnectionSyncDetail
	err    error
}

type syncService struct {
	BaseService
	connectionRepo portsrepo.ConnectionRepositoryFacade
	txnRepo        portsrepo.TransactionRepositoryFacade
	syncJobRepo    portsrepo.SyncJobRepositoryFacade
	ruleSvc        portssvc.RuleSvcFacade
	normalizer     *Normalizer
	deduper        *Deduper
	vault          *vault.Vault
	scrapers       ports.ScraperRegistry
	sink           metrics.Sink
	concurrency    int
	timeout        time.Duration

	// inFlight guards at-most-one-active-sync-per-connection. Keys are
	// connection ids, values the owning household id, so status reads can
	// be scoped to a household.
	mu       sync.Mutex
	inFlight map[string]string
}

// NewSyncService creates the sync orchestrator. A nil vault is tolerated at
// construction; SyncCycle then fails with a configuration error, matching
// the startup behavior when no master secret is set.
func NewSyncService(
	connectionRepo portsrepo.ConnectionRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	syncJobRepo portsrepo.SyncJobRepositoryFacade,
	ruleSvc portssvc.RuleSvcFacade,
	normalizer *Normalizer,
	deduper *Deduper,
	v *vault.Vault,
	scrapers ports.ScraperRegistry,
	sink metrics.Sink,
	concurrency int,
	timeout time.Duration,
) portssvc.SyncSvcFacade {
	if concurrency < 1 {
		concurrency = 1
	}
	if sink == nil {
		sink = metrics.Noop{}
	}
	return &syncService{
		connectionRepo: connectionRepo,
		txnRepo:        txnRepo,
		syncJobRepo:    syncJobRepo,
		ruleSvc:        ruleSvc,
		normalizer:     normalizer,
		deduper:        deduper,
		vault:          v,
		scrapers:       scrapers,
		sink:           sink,
		concurrency:    concurrency,
		timeout:        timeout,
		inFlight:       make(map[string]string),
	}
}

var _ portssvc.SyncSvcFacade = (*syncService)(nil)

// SyncCycle runs one sync cycle for a household. Per-connection failures are
// isolated and aggregated; only a configuration-level fault (no vault, i.e.
// no master secret) aborts before any connection is attempted.
func (s *syncService) SyncCycle(ctx context.Context, householdID string, connectionID *string) (*domain.SyncResult, error) {
	if s.vault == nil {
		return nil, fmt.Errorf("master secret not configured: %w", apperrors.ErrConfiguration)
	}

	connections, err := s.resolveConnections(ctx, householdID, connectionID)
	if err != nil {
		return nil, err
	}

	acquired := s.acquireLocks(connections)
	defer s.releaseLocks(acquired)
	if connectionID != nil && len(acquired) == 0 {
		return nil, fmt.Errorf("connection %s: %w", *connectionID, apperrors.ErrSyncInProgress)
	}

	started := time.Now()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	outcomes := make([]connectionOutcome, len(acquired))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	for i, conn := range acquired {
		wg.Add(1)
		go func(i int, conn domain.Connection) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[i] = s.syncConnection(ctx, conn)
		}(i, conn)
	}
	wg.Wait()

	result := &domain.SyncResult{
		ConnectionsAttempted: len(acquired),
		Errors:               []string{},
		Details:              make([]domain.ConnectionSyncDetail, 0, len(acquired)),
		Duration:             time.Since(started),
	}
	for _, outcome := range outcomes {
		result.Details = append(result.Details, outcome.detail)
		result.TransactionsNew += outcome.detail.TransactionsNew
		if outcome.err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", outcome.detail.ConnectionID, outcome.err))
		} else {
			result.ConnectionsSucceeded++
		}
	}

	s.sink.Count("sync.connections_attempted", result.ConnectionsAttempted, map[string]any{"household_id": householdID})
	s.sink.Count("sync.transactions_new", result.TransactionsNew, map[string]any{"household_id": householdID})
	s.sink.Timing("sync.cycle_duration", result.Duration, map[string]any{"household_id": householdID})
	s.LogInfo(ctx, "Sync cycle finished",
		slog.Int("attempted", result.ConnectionsAttempted),
		slog.Int("succeeded", result.ConnectionsSucceeded),
		slog.Int("new", result.TransactionsNew),
		slog.Duration("duration", result.Duration))
	return result, nil
}

// resolveConnections loads the sync targets: one connection when narrowed,
// otherwise every active connection of the household.
func (s *syncService) resolveConnections(ctx context.Context, householdID string, connectionID *string) ([]domain.Connection, error) {
	if connectionID != nil {
		conn, err := s.connectionRepo.FindConnectionByID(ctx, householdID, *connectionID)
		if err != nil {
			return nil, fmt.Errorf("failed to find connection: %w", err)
		}
		return []domain.Connection{*conn}, nil
	}
	connections, err := s.connectionRepo.ListConnections(ctx, householdID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return connections, nil
}

// acquireLocks claims the in-flight slot for each connection it can.
// Connections already syncing are left out; the caller decides whether that
// is a rejection (explicit single-connection trigger) or a silent skip
// (sync-all overlapping a running sync).
func (s *syncService) acquireLocks(connections []domain.Connection) []domain.Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	acquired := make([]domain.Connection, 0, len(connections))
	for _, conn := range connections {
		if _, running := s.inFlight[conn.ConnectionID]; running {
			continue
		}
		s.inFlight[conn.ConnectionID] = conn.HouseholdID
		acquired = append(acquired, conn)
	}
	return acquired
}

func (s *syncService) releaseLocks(connections []domain.Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range connections {
		delete(s.inFlight, conn.ConnectionID)
	}
}

// ActiveSyncs reports which of the household's connections have a sync in
// flight, sorted for stable output. Connections of other households are
// never exposed.
func (s *syncService) ActiveSyncs(householdID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.inFlight))
	for id, owner := range s.inFlight {
		if owner == householdID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (s *syncService) ListSyncJobs(ctx context.Context, householdID, connectionID string, limit int) ([]domain.SyncJob, error) {
	jobs, err := s.syncJobRepo.ListSyncJobsByConnection(ctx, householdID, connectionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync jobs: %w", err)
	}
	return jobs, nil
}

// syncConnection runs the full pipeline for one connection: decrypt, fetch,
// normalize, dedup, persist, categorize, then record the outcome on both the
// connection row and the append-only job trail. Every failure path is caught
// here; nothing escapes to abort a sibling connection.
func (s *syncService) syncConnection(ctx context.Context, conn domain.Connection) connectionOutcome {
	detail := domain.ConnectionSyncDetail{
		ConnectionID: conn.ConnectionID,
		Provider:     conn.Provider,
		Status:       domain.SyncJobRunning,
	}

	job := domain.SyncJob{
		SyncJobID:    uuid.NewString(),
		HouseholdID:  conn.HouseholdID,
		ConnectionID: conn.ConnectionID,
		Status:       domain.SyncJobPending,
		StartedAt:    time.Now(),
	}
	if err := s.syncJobRepo.CreateSyncJob(ctx, job); err != nil {
		return s.failConnection(ctx, conn, detail, job, fmt.Errorf("failed to record sync job: %w", err))
	}
	if err := s.syncJobRepo.UpdateSyncJob(ctx, job.SyncJobID, domain.SyncJobRunning, 0, 0, "", nil); err != nil {
		return s.failConnection(ctx, conn, detail, job, fmt.Errorf("failed to mark sync job running: %w", err))
	}

	found, inserted, err := s.runPipeline(ctx, conn)
	detail.TransactionsFound = found
	detail.TransactionsNew = inserted
	if err != nil {
		job.TransactionsFound = found
		job.TransactionsNew = inserted
		return s.failConnection(ctx, conn, detail, job, err)
	}

	now := time.Now()
	detail.Status = domain.SyncJobSucceeded
	if err := s.syncJobRepo.UpdateSyncJob(ctx, job.SyncJobID, domain.SyncJobSucceeded, found, inserted, "", &now); err != nil {
		s.LogError(ctx, err, "Failed to finalize sync job", slog.String("sync_job_id", job.SyncJobID))
	}
	if err := s.connectionRepo.UpdateSyncOutcome(ctx, conn.HouseholdID, conn.ConnectionID, domain.ConnectionSyncSucceeded, "", now); err != nil {
		s.LogError(ctx, err, "Failed to record sync outcome", slog.String("connection_id", conn.ConnectionID))
	}
	return connectionOutcome{detail: detail}
}

// failConnection records a terminal failure on the job trail and the
// connection row, then returns the failed outcome. Partial progress of
// already-inserted transactions is preserved; insertion is idempotent per
// external id, so a retry will not duplicate them.
func (s *syncService) failConnection(ctx context.Context, conn domain.Connection, detail domain.ConnectionSyncDetail, job domain.SyncJob, cause error) connectionOutcome {
	now := time.Now()
	detail.Status = domain.SyncJobFailed
	detail.ErrorMessage = cause.Error()
	if err := s.syncJobRepo.UpdateSyncJob(ctx, job.SyncJobID, domain.SyncJobFailed, job.TransactionsFound, job.TransactionsNew, cause.Error(), &now); err != nil {
		s.LogError(ctx, err, "Failed to record sync job failure", slog.String("sync_job_id", job.SyncJobID))
	}
	if err := s.connectionRepo.UpdateSyncOutcome(ctx, conn.HouseholdID, conn.ConnectionID, domain.ConnectionSyncFailed, cause.Error(), now); err != nil {
		s.LogError(ctx, err, "Failed to record sync outcome", slog.String("connection_id", conn.ConnectionID))
	}
	s.LogWarn(ctx, "Connection sync failed",
		slog.String("connection_id", conn.ConnectionID),
		slog.String("provider", string(conn.Provider)),
		slog.String("error", cause.Error()))
	return connectionOutcome{detail: detail, err: cause}
}

// runPipeline performs the decrypt-fetch-normalize-dedup-persist-categorize
// sequence. Returns (records found, records inserted, error).
func (s *syncService) runPipeline(ctx context.Context, conn domain.Connection) (int, int, error) {
	var credentials domain.ConnectionCredentials
	if err := s.vault.Decrypt(conn.EncryptedCredentials, &credentials); err != nil {
		return 0, 0, fmt.Errorf("credential decryption failed: %w", err)
	}

	scraper, ok := s.scrapers.ScraperFor(conn.Provider)
	if !ok {
		return 0, 0, fmt.Errorf("no scraper for provider %s: %w", conn.Provider, apperrors.ErrScraper)
	}
	accounts, err := scraper.Fetch(ctx, credentials)
	credentials = nil
	if err != nil {
		return 0, 0, fmt.Errorf("scraper failed: %v: %w", err, apperrors.ErrScraper)
	}

	found := 0
	candidates := make([]domain.MappedTransaction, 0)
	for _, account := range accounts {
		found += len(account.Records)
		mapped := s.normalizer.NormalizeBatch(account.Records, conn.HouseholdID, conn.ConnectionID, account.AccountNumber)
		candidates = append(candidates, mapped...)
	}
	if len(candidates) == 0 {
		return found, 0, nil
	}

	externalIDs := make([]string, len(candidates))
	for i, txn := range candidates {
		externalIDs[i] = txn.ExternalID
	}
	existing, err := s.txnRepo.FindExistingExternalIDs(ctx, conn.HouseholdID, externalIDs)
	if err != nil {
		return found, 0, fmt.Errorf("dedup lookup failed: %w", err)
	}
	fresh := s.deduper.FilterNew(candidates, existing)
	if len(fresh) == 0 {
		return found, 0, nil
	}

	s.flagNearDuplicates(ctx, conn, fresh)

	now := time.Now()
	for i := range fresh {
		fresh[i].TransactionID = uuid.NewString()
		fresh[i].AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "sync",
			LastUpdatedAt: now,
			LastUpdatedBy: "sync",
		}
	}
	inserted, err := s.txnRepo.SaveNewTransactions(ctx, fresh)
	if err != nil {
		// Already-inserted rows stay; insertion is idempotent per external id.
		return found, inserted, fmt.Errorf("persistence failed: %w", err)
	}

	if err := s.categorizeNew(ctx, conn); err != nil {
		return found, inserted, err
	}
	return found, inserted, nil
}

// flagNearDuplicates logs candidates that look like an already-persisted
// event under a different external id, typically a provider that started
// supplying real identifiers. Review signal only; nothing is merged or
// dropped here, and a lookup failure never fails the sync.
func (s *syncService) flagNearDuplicates(ctx context.Context, conn domain.Connection, fresh []domain.MappedTransaction) {
	for accountID, group := range s.deduper.GroupByAccount(fresh) {
		byDay := make(map[string][]domain.MappedTransaction)
		for _, txn := range group {
			byDay[txn.DayKey()] = append(byDay[txn.DayKey()], txn)
		}
		for _, txns := range byDay {
			existing, err := s.txnRepo.ListRecentByAccount(ctx, conn.HouseholdID, accountID, txns[0].Date)
			if err != nil {
				s.LogWarn(ctx, "Near-duplicate lookup failed",
					slog.String("connection_id", conn.ConnectionID),
					slog.String("account_id", accountID),
					slog.String("error", err.Error()))
				continue
			}
			for _, dup := range s.deduper.NearDuplicates(txns, existing) {
				s.LogWarn(ctx, "Possible duplicate transaction",
					slog.String("connection_id", conn.ConnectionID),
					slog.String("candidate_external_id", dup.Candidate.ExternalID),
					slog.String("existing_external_id", dup.Existing.ExternalID),
					slog.Int("distance", dup.Distance))
			}
		}
	}
}

// categorizeNew runs the household's rules over the connection's
// uncategorized transactions and persists the first-match assignments.
func (s *syncService) categorizeNew(ctx context.Context, conn domain.Connection) error {
	rules, err := s.ruleSvc.ListEvaluableRules(ctx, conn.HouseholdID)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	uncategorized, err := s.txnRepo.ListUncategorized(ctx, conn.HouseholdID, conn.ConnectionID)
	if err != nil {
		return fmt.Errorf("failed to list uncategorized transactions: %w", err)
	}
	now := time.Now()
	for _, txn := range uncategorized {
		categoryID := s.ruleSvc.Evaluate(rules, txn)
		if categoryID == nil {
			continue
		}
		if err := s.txnRepo.SetTransactionCategory(ctx, conn.HouseholdID, txn.TransactionID, categoryID, "sync", now); err != nil {
			return fmt.Errorf("failed to persist category assignment: %w", err)
		}
	}
	return nil
}
