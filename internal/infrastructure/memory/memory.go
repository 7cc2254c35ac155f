// Package memory fournit des dépôts en mémoire pour les tests de cas
// d'usage. Même contrat que les adaptateurs PostgreSQL (nil si absent,
// ligne de stock à zéro pour GetForUpdate, ErrDuplicate sur collision de
// clé naturelle), sans transaction réelle.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ngandu/barresto-api/internal/domain"
	"github.com/ngandu/barresto-api/internal/domain/entity"
	"github.com/ngandu/barresto-api/internal/domain/repository"
)

// Store état partagé de tous les dépôts en mémoire.
type Store struct {
	mu sync.Mutex

	products    map[string]*entity.Product
	prices      map[string][]*entity.SalePrice
	stock       map[string]*entity.StockItem // clé productID|location
	movements   []*entity.StockMovement
	investments map[string]*entity.Investment
	sales       map[string]*entity.Sale
	saleItems   map[string]*entity.SaleItem
	clients     map[string]*entity.Client
	loyalty     []*entity.LoyaltyTransaction
	finance     []*entity.FinancialTransaction
	orders      []*entity.PreparationOrder
	users       map[string]*entity.User
}

// NewStore construit un état vide.
func NewStore() *Store {
	return &Store{
		products:    make(map[string]*entity.Product),
		prices:      make(map[string][]*entity.SalePrice),
		stock:       make(map[string]*entity.StockItem),
		investments: make(map[string]*entity.Investment),
		sales:       make(map[string]*entity.Sale),
		saleItems:   make(map[string]*entity.SaleItem),
		clients:     make(map[string]*entity.Client),
		users:       make(map[string]*entity.User),
	}
}

// Repos retourne le faisceau de dépôts sur ce store.
func (s *Store) Repos() *repository.Repos {
	return &repository.Repos{
		Products:    &productRepo{s},
		Prices:      &priceRepo{s},
		Stock:       &stockRepo{s},
		Movements:   &movementRepo{s},
		Investments: &investmentRepo{s},
		Sales:       &saleRepo{s},
		Clients:     &clientRepo{s},
		Loyalty:     &loyaltyRepo{s},
		Finance:     &financeRepo{s},
		Orders:      &orderRepo{s},
	}
}

// TxRunner exécute fn directement sur le store. Pas de rollback: les tests
// qui provoquent une erreur vérifient l'état via les invariants, pas via
// l'atomicité.
type TxRunner struct {
	Store *Store
}

// Run exécute fn avec les dépôts du store.
func (t *TxRunner) Run(_ context.Context, fn func(r *repository.Repos) error) error {
	return fn(t.Store.Repos())
}

var _ repository.TxRunner = (*TxRunner)(nil)

func stockKey(productID string, location entity.Location) string {
	return productID + "|" + string(location)
}

// --- produits ---

type productRepo struct{ s *Store }

func (r *productRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.NameKey == product.NameKey && p.Vendable == product.Vendable {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetByNameKey(nameKey string, vendable bool) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.NameKey == nameKey && p.Vendable == vendable {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *productRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CostCDF = cost
	p.UpdatedAt = time.Now()
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

// --- prix ---

type priceRepo struct{ s *Store }

func (r *priceRepo) Create(price *entity.SalePrice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *price
	list := r.s.prices[price.ProductID]
	for i, p := range list {
		if p.Space == price.Space {
			list[i] = &cp
			return nil
		}
	}
	r.s.prices[price.ProductID] = append(list, &cp)
	return nil
}

func (r *priceRepo) ListByProduct(productID string) ([]*entity.SalePrice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.SalePrice
	for _, p := range r.s.prices[productID] {
		cp := *p
		list = append(list, &cp)
	}
	return list, nil
}

func (r *priceRepo) DeleteByProduct(productID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.prices, productID)
	return nil
}

// --- stock ---

type stockRepo struct{ s *Store }

func (r *stockRepo) Get(productID string, location entity.Location) (*entity.StockItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.stock[stockKey(productID, location)]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *stockRepo) GetForUpdate(productID string, location entity.Location) (*entity.StockItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.stock[stockKey(productID, location)]
	if !ok {
		return &entity.StockItem{
			ProductID: productID,
			Location:  location,
			Quantity:  decimal.Zero,
			UpdatedAt: time.Now(),
		}, nil
	}
	cp := *item
	return &cp, nil
}

func (r *stockRepo) Upsert(item *entity.StockItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *item
	r.s.stock[stockKey(item.ProductID, item.Location)] = &cp
	return nil
}

// --- mouvements ---

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(movement *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *movement
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *movementRepo) ListByInvestment(investmentID string) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.InvestmentID != nil && *m.InvestmentID == investmentID {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *movementRepo) DeleteByInvestment(investmentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.InvestmentID == nil || *m.InvestmentID != investmentID {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

func (r *movementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Location != "" {
			from := m.From != nil && *m.From == filter.Location
			to := m.To != nil && *m.To == filter.Location
			if !from && !to {
				continue
			}
		}
		if filter.InvestmentID != "" && (m.InvestmentID == nil || *m.InvestmentID != filter.InvestmentID) {
			continue
		}
		if filter.SaleID != "" && (m.SaleID == nil || *m.SaleID != filter.SaleID) {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !m.CreatedAt.Before(*filter.To) {
			continue
		}
		cp := *m
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, filter.Limit, filter.Offset), nil
}

// --- achats ---

type investmentRepo struct{ s *Store }

func (r *investmentRepo) Create(inv *entity.Investment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *inv
	r.s.investments[inv.ID] = &cp
	return nil
}

func (r *investmentRepo) GetByID(id string) (*entity.Investment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.investments[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *investmentRepo) Update(inv *entity.Investment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.investments[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *inv
	r.s.investments[inv.ID] = &cp
	return nil
}

func (r *investmentRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.investments, id)
	return nil
}

func (r *investmentRepo) List(limit, offset int) ([]*entity.Investment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Investment
	for _, inv := range r.s.investments {
		cp := *inv
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return paginate(list, limit, offset), nil
}

// --- ventes ---

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *saleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *saleRepo) Update(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *saleRepo) CreateItem(item *entity.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *item
	r.s.saleItems[item.ID] = &cp
	return nil
}

func (r *saleRepo) UpdateItem(item *entity.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.saleItems[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.s.saleItems[item.ID] = &cp
	return nil
}

func (r *saleRepo) DeleteItem(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.saleItems, id)
	return nil
}

func (r *saleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.SaleItem
	for _, it := range r.s.saleItems {
		if it.SaleID == saleID {
			cp := *it
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *saleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Sale
	for _, sale := range r.s.sales {
		cp := *sale
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

// --- clients et fidélité ---

type clientRepo struct{ s *Store }

func (r *clientRepo) Create(client *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *client
	r.s.clients[client.ID] = &cp
	return nil
}

func (r *clientRepo) GetByID(id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *clientRepo) GetForUpdate(id string) (*entity.Client, error) {
	return r.GetByID(id)
}

func (r *clientRepo) UpdatePoints(clientID string, points int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[clientID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Points = points
	c.UpdatedAt = time.Now()
	return nil
}

func (r *clientRepo) List(limit, offset int) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Client
	for _, c := range r.s.clients {
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

type loyaltyRepo struct{ s *Store }

func (r *loyaltyRepo) Create(tx *entity.LoyaltyTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *tx
	r.s.loyalty = append(r.s.loyalty, &cp)
	return nil
}

func (r *loyaltyRepo) ListByClient(clientID string) ([]*entity.LoyaltyTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.LoyaltyTransaction
	for _, t := range r.s.loyalty {
		if t.ClientID == clientID {
			cp := *t
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *loyaltyRepo) SumByClient(clientID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int64
	for _, t := range r.s.loyalty {
		if t.ClientID == clientID {
			sum += t.Amount
		}
	}
	return sum, nil
}

// --- caisse et bons ---

type financeRepo struct{ s *Store }

func (r *financeRepo) Create(tx *entity.FinancialTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *tx
	r.s.finance = append(r.s.finance, &cp)
	return nil
}

func (r *financeRepo) ListBySale(saleID string) ([]*entity.FinancialTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.FinancialTransaction
	for _, t := range r.s.finance {
		if t.SaleID == saleID {
			cp := *t
			list = append(list, &cp)
		}
	}
	return list, nil
}

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(order *entity.PreparationOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *order
	r.s.orders = append(r.s.orders, &cp)
	return nil
}

func (r *orderRepo) ListBySale(saleID string) ([]*entity.PreparationOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.PreparationOrder
	for _, o := range r.s.orders {
		if o.SaleID == saleID {
			cp := *o
			list = append(list, &cp)
		}
	}
	return list, nil
}

// --- utilisateurs ---

// UserRepo dépôt utilisateurs en mémoire (exporté: utilisé directement par
// les tests d'authentification, hors faisceau transactionnel).
type UserRepo struct{ s *Store }

// NewUserRepo construit le dépôt utilisateurs sur le store.
func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
