package service

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/pkg/uow"
)

// memStore is an in-memory database for service tests. Every repository call is atomic, a failed
// uow.Do rolls back through an undo journal.
type memStore struct {
	mu       sync.Mutex
	seq      int64
	users    map[int64]domain.User
	items    map[int64]domain.Item
	orders   map[int64]domain.Order
	lines    map[int64]domain.OrderItem
	txs      []domain.PointTransaction
	settings map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int64]domain.User),
		items:    make(map[int64]domain.Item),
		orders:   make(map[int64]domain.Order),
		lines:    make(map[int64]domain.OrderItem),
		settings: map[string]string{domain.SettingAutoDelivery: "false", domain.SettingStoreEnabled: "true"},
	}
}

func (s *memStore) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *memStore) addUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID()
	if u.Role == "" {
		u.Role = domain.UserRoleUser
	}
	s.users[u.ID] = u
	if u.Points != 0 {
		s.txs = append(s.txs, domain.PointTransaction{
			ID: s.nextID(), UserID: u.ID, Amount: u.Points, Type: domain.TransactionTypeAdminAdjust,
		})
	}
	return u
}

func (s *memStore) addItem(i domain.Item) domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	i.ID = s.nextID()
	s.items[i.ID] = i
	return i
}

func (s *memStore) addOrder(o domain.Order, lines ...domain.OrderItem) (domain.Order, []domain.OrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.nextID()
	if o.OrderNumber == "" {
		o.OrderNumber = NewOrderNumber(time.Now())
	}
	s.orders[o.ID] = o
	res := make([]domain.OrderItem, len(lines))
	for i, l := range lines {
		l.ID = s.nextID()
		l.OrderID = o.ID
		if l.DeliveryStatus == "" {
			l.DeliveryStatus = domain.DeliveryStatusPending
		}
		s.lines[l.ID] = l
		res[i] = l
	}
	return o, res
}

func (s *memStore) user(id int64) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *memStore) item(id int64) domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id]
}

func (s *memStore) order(id int64) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

func (s *memStore) line(id int64) domain.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines[id]
}

func (s *memStore) ordersCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) transactions(userID int64) []domain.PointTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []domain.PointTransaction
	for _, t := range s.txs {
		if t.UserID == userID {
			res = append(res, t)
		}
	}
	return res
}

func (s *memStore) ledgerSum(userID int64) int64 {
	var sum int64
	for _, t := range s.transactions(userID) {
		sum += t.Amount
	}
	return sum
}

func (s *memStore) uow() *memUOW {
	return &memUOW{store: s}
}

type memUOW struct {
	store *memStore
}

func (u *memUOW) Register(uow.RepositoryName, uow.RepositoryFactory) error { return nil }

func (u *memUOW) GetRepository(name uow.RepositoryName) (uow.Repository, error) {
	return u.store.repository(name, nil)
}

func (u *memUOW) Do(ctx context.Context, fn func(context.Context, uow.TX) error) error {
	tx := &memTX{store: u.store}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

type memTX struct {
	store *memStore
	mu    sync.Mutex
	undo  []func()
}

func (t *memTX) Get(name uow.RepositoryName) (uow.Repository, error) {
	return t.store.repository(name, t)
}

// record is called with store.mu held.
func (t *memTX) record(f func()) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.undo = append(t.undo, f)
}

func (t *memTX) rollback() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (s *memStore) repository(name uow.RepositoryName, tx *memTX) (uow.Repository, error) {
	switch repoargs.RepositoryName(name) {
	case repoargs.UserRepoName:
		return &memUserRepo{s: s, tx: tx}, nil
	case repoargs.ItemRepoName:
		return &memItemRepo{s: s, tx: tx}, nil
	case repoargs.OrderRepoName:
		return &memOrderRepo{s: s, tx: tx}, nil
	case repoargs.PointTransactionRepoName:
		return &memPointTxRepo{s: s, tx: tx}, nil
	case repoargs.SettingsRepoName:
		return &memSettingsRepo{s: s, tx: tx}, nil
	}
	return nil, uow.ErrRepositoryNotRegistered
}

type memUserRepo struct {
	s  *memStore
	tx *memTX
}

func (r *memUserRepo) CreateUser(_ context.Context, args repoargs.CreateUser) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == args.Username || u.SteamID == args.SteamID {
			return nil, domain.ErrDuplicateKey
		}
	}
	u := domain.User{
		ID: r.s.nextID(), Username: args.Username, EncryptedPassword: args.Password, SteamID: args.SteamID,
		Role: args.Role, IsActive: true,
	}
	r.s.users[u.ID] = u
	r.tx.record(func() { delete(r.s.users, u.ID) })
	return &u, nil
}

func (r *memUserRepo) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &u, nil
}

func (r *memUserRepo) AddPoints(_ context.Context, userID int64, delta int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return 0, domain.ErrRecordNotFound
	}
	if u.Points+delta < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	u.Points += delta
	r.s.users[userID] = u
	r.tx.record(func() {
		restored := r.s.users[userID]
		restored.Points -= delta
		r.s.users[userID] = restored
	})
	return u.Points, nil
}

type memPointTxRepo struct {
	s  *memStore
	tx *memTX
}

func (r *memPointTxRepo) Create(
	_ context.Context,
	args repoargs.PointTransactionCreate,
) (*domain.PointTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := domain.PointTransaction{
		ID: r.s.nextID(), CreatedAt: time.Now(), UserID: args.UserID, Amount: args.Amount, Type: args.Type,
		Description: args.Description,
	}
	r.s.txs = append(r.s.txs, t)
	r.tx.record(func() {
		r.s.txs = slices.DeleteFunc(r.s.txs, func(x domain.PointTransaction) bool { return x.ID == t.ID })
	})
	return &t, nil
}

func (r *memPointTxRepo) GetByUserID(_ context.Context, userID int64, _, _ uint) ([]domain.PointTransaction, error) {
	res := r.s.transactions(userID)
	slices.Reverse(res)
	return res, nil
}

func (r *memPointTxRepo) Aggregate(_ context.Context, userID int64) (*repoargs.LedgerAggregation, error) {
	return &repoargs.LedgerAggregation{Balance: r.s.user(userID).Points, TransactionsSum: r.s.ledgerSum(userID)}, nil
}

type memItemRepo struct {
	s  *memStore
	tx *memTX
}

func (r *memItemRepo) FindByID(_ context.Context, id int64) (*domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &i, nil
}

func (r *memItemRepo) ListActive(_ context.Context, category *domain.ItemCategory) ([]domain.Item, error) {
	all, _ := r.ListAll(context.Background())
	return slices.DeleteFunc(all, func(i domain.Item) bool {
		return !i.IsActive || (category != nil && i.Category != *category)
	}), nil
}

func (r *memItemRepo) ListAll(_ context.Context) ([]domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := make([]domain.Item, 0, len(r.s.items))
	for _, i := range r.s.items {
		res = append(res, i)
	}
	sort.Slice(res, func(a, b int) bool { return res[a].ID < res[b].ID })
	return res, nil
}

func (r *memItemRepo) CategoryCounts(ctx context.Context) ([]repoargs.CategoryCount, error) {
	active, _ := r.ListActive(ctx, nil)
	counts := make(map[domain.ItemCategory]int64)
	for _, i := range active {
		counts[i.Category]++
	}
	res := make([]repoargs.CategoryCount, 0, len(counts))
	for c, n := range counts {
		res = append(res, repoargs.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(res, func(a, b int) bool { return res[a].Category < res[b].Category })
	return res, nil
}

func (r *memItemRepo) Create(_ context.Context, args repoargs.ItemUpsert) (*domain.Item, error) {
	i := r.s.addItem(itemFromUpsert(args))
	return &i, nil
}

func (r *memItemRepo) Update(_ context.Context, id int64, args repoargs.ItemUpsert) (*domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return nil, domain.ErrRecordNotFound
	}
	i := itemFromUpsert(args)
	i.ID = id
	r.s.items[id] = i
	return &i, nil
}

func (r *memItemRepo) SetActive(_ context.Context, id int64, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.items[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	i.IsActive = active
	r.s.items[id] = i
	return nil
}

func (r *memItemRepo) SetImageURL(_ context.Context, id int64, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.items[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	i.ImageURL = url
	r.s.items[id] = i
	return nil
}

func (r *memItemRepo) ReserveStock(_ context.Context, id int64, qty int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.items[id]
	if !ok || i.StockUnlimited || i.StockQuantity < qty {
		return domain.ErrInsufficientStock
	}
	i.StockQuantity -= qty
	r.s.items[id] = i
	r.tx.record(func() {
		restored := r.s.items[id]
		restored.StockQuantity += qty
		r.s.items[id] = restored
	})
	return nil
}

func itemFromUpsert(args repoargs.ItemUpsert) domain.Item {
	return domain.Item{
		Name: args.Name, Description: args.Description, Price: args.Price, Category: args.Category,
		Classname: args.Classname, Attachments: args.Attachments, SortOrder: args.SortOrder,
		StockUnlimited: args.StockUnlimited, StockQuantity: args.StockQuantity, IsActive: args.IsActive,
	}
}

type memOrderRepo struct {
	s  *memStore
	tx *memTX
}

func (r *memOrderRepo) Create(_ context.Context, args repoargs.OrderCreate) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.OrderNumber == args.OrderNumber {
			return nil, domain.ErrDuplicateKey
		}
	}
	o := domain.Order{
		ID: r.s.nextID(), CreatedAt: time.Now(), OrderNumber: args.OrderNumber, UserID: args.UserID,
		TotalAmount: args.TotalAmount, Status: args.Status, PaymentMethod: args.PaymentMethod, Notes: args.Notes,
	}
	r.s.orders[o.ID] = o
	r.tx.record(func() { delete(r.s.orders, o.ID) })
	return &o, nil
}

func (r *memOrderRepo) CreateItem(_ context.Context, args repoargs.OrderItemCreate) (*domain.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l := domain.OrderItem{
		ID: r.s.nextID(), CreatedAt: time.Now(), OrderID: args.OrderID, ItemID: args.ItemID,
		Quantity: args.Quantity, UnitPrice: args.UnitPrice, TotalPrice: args.TotalPrice,
		DeliveryStatus: domain.DeliveryStatusPending,
	}
	r.s.lines[l.ID] = l
	r.tx.record(func() { delete(r.s.lines, l.ID) })
	return &l, nil
}

func (r *memOrderRepo) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &o, nil
}

func (r *memOrderRepo) List(_ context.Context, filter repoargs.OrderFilter) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []domain.Order
	for _, o := range r.s.orders {
		if filter.UserID != nil && o.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		res = append(res, o)
	}
	sort.Slice(res, func(a, b int) bool { return res[a].ID > res[b].ID })
	return res, nil
}

func (r *memOrderRepo) Stats(_ context.Context) ([]repoargs.OrderStatusCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byStatus := make(map[domain.OrderStatusType]*repoargs.OrderStatusCount)
	for _, o := range r.s.orders {
		c, ok := byStatus[o.Status]
		if !ok {
			c = &repoargs.OrderStatusCount{Status: o.Status}
			byStatus[o.Status] = c
		}
		c.Count++
		c.TotalAmount += o.TotalAmount
	}
	res := make([]repoargs.OrderStatusCount, 0, len(byStatus))
	for _, c := range byStatus {
		res = append(res, *c)
	}
	sort.Slice(res, func(a, b int) bool { return res[a].Status < res[b].Status })
	return res, nil
}

func (r *memOrderRepo) GetItems(_ context.Context, orderID int64) ([]domain.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []domain.OrderItem
	for _, l := range r.s.lines {
		if l.OrderID == orderID {
			res = append(res, l)
		}
	}
	sort.Slice(res, func(a, b int) bool { return res[a].ID < res[b].ID })
	return res, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, update repoargs.OrderStatusUpdate) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[update.OrderID]
	if !ok || !slices.Contains(update.From, o.Status) {
		return nil, domain.ErrRecordNotFound
	}
	prev := o
	o.Status = update.Status
	if update.Notes != nil {
		o.Notes = *update.Notes
	}
	if update.Status == domain.OrderStatusCompleted {
		now := time.Now()
		o.CompletedAt = &now
	}
	r.s.orders[o.ID] = o
	r.tx.record(func() { r.s.orders[prev.ID] = prev })
	return &o, nil
}

func (r *memOrderRepo) UpdateNotes(_ context.Context, orderID int64, notes string) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[orderID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	o.Notes = notes
	r.s.orders[orderID] = o
	return &o, nil
}

func (r *memOrderRepo) RecordDeliveryAttempt(
	_ context.Context,
	attempt repoargs.DeliveryAttempt,
) (*domain.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lines[attempt.OrderItemID]
	if !ok || l.DeliveryStatus == domain.DeliveryStatusDelivered {
		return nil, domain.ErrRecordNotFound
	}
	l.DeliveryStatus = attempt.Status
	l.DeliveryData = attempt.Data
	l.DeliveryAttempts++
	if attempt.Status == domain.DeliveryStatusDelivered {
		now := time.Now()
		l.DeliveredAt = &now
	}
	r.s.lines[l.ID] = l
	return &l, nil
}

func (r *memOrderRepo) CancelOpenItems(_ context.Context, orderID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.lines {
		if l.OrderID == orderID && l.DeliveryStatus.IsRetryable() {
			prev := l
			l.DeliveryStatus = domain.DeliveryStatusCancelled
			r.s.lines[id] = l
			r.tx.record(func() { r.s.lines[prev.ID] = prev })
		}
	}
	return nil
}

func (r *memOrderRepo) GetForRedelivery(_ context.Context, filter repoargs.RedeliveryFilter) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []int64
	for _, o := range r.s.orders {
		if o.Status != domain.OrderStatusPaid {
			continue
		}
		for _, l := range r.s.lines {
			if l.OrderID == o.ID && l.DeliveryStatus.IsRetryable() && l.DeliveryAttempts < filter.MaxAttempts &&
				(l.DeliveryAttempts > 0 || filter.IncludeUnattempted) {
				ids = append(ids, o.ID)
				break
			}
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (r *memOrderRepo) ListDeliveries(
	_ context.Context,
	filter repoargs.DeliveryFilter,
) ([]repoargs.DeliveryRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []repoargs.DeliveryRecord
	for _, l := range r.s.lines {
		o := r.s.orders[l.OrderID]
		u := r.s.users[o.UserID]
		i := r.s.items[l.ItemID]
		if filter.SteamID != "" && u.SteamID != filter.SteamID {
			continue
		}
		if filter.PlayerName != "" && !strings.Contains(u.Username, filter.PlayerName) {
			continue
		}
		if filter.Status != nil && l.DeliveryStatus != *filter.Status {
			continue
		}
		res = append(res, repoargs.DeliveryRecord{
			OrderItem: l, OrderNumber: o.OrderNumber, Username: u.Username, SteamID: u.SteamID,
			ItemName: i.Name, Classname: i.Classname,
		})
	}
	sort.Slice(res, func(a, b int) bool { return res[a].OrderItem.ID > res[b].OrderItem.ID })
	return res, nil
}

type memSettingsRepo struct {
	s  *memStore
	tx *memTX
}

func (r *memSettingsRepo) GetAll(_ context.Context) (map[string]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := make(map[string]string, len(r.s.settings))
	for k, v := range r.s.settings {
		res[k] = v
	}
	return res, nil
}

func (r *memSettingsRepo) Set(_ context.Context, key, value string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, had := r.s.settings[key]
	r.s.settings[key] = value
	r.tx.record(func() {
		if had {
			r.s.settings[key] = prev
		} else {
			delete(r.s.settings, key)
		}
	})
	return nil
}

var (
	_ UserRepository             = (*memUserRepo)(nil)
	_ PointTransactionRepository = (*memPointTxRepo)(nil)
	_ ItemRepository             = (*memItemRepo)(nil)
	_ OrderRepository            = (*memOrderRepo)(nil)
	_ SettingsRepository         = (*memSettingsRepo)(nil)
	_ uow.UOW                    = (*memUOW)(nil)
)
