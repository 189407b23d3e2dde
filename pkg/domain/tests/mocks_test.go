package tests

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
	"github.com/rachelSwimmer/StoreApi/pkg/domain/service"
)

// mockState is the shared in-memory database behind all mock repositories.
// Values are stored by copy, so a caller can never mutate stored state
// without going through Update.
type mockState struct {
	categories map[uuid.UUID]model.Category
	products   map[uuid.UUID]model.Product
	users      map[uuid.UUID]model.User
	orders     map[uuid.UUID]model.Order
}

func newMockState() *mockState {
	return &mockState{
		categories: make(map[uuid.UUID]model.Category),
		products:   make(map[uuid.UUID]model.Product),
		users:      make(map[uuid.UUID]model.User),
		orders:     make(map[uuid.UUID]model.Order),
	}
}

func (s *mockState) snapshot() *mockState {
	clone := newMockState()
	for id, c := range s.categories {
		clone.categories[id] = c
	}
	for id, p := range s.products {
		clone.products[id] = p
	}
	for id, u := range s.users {
		clone.users[id] = u
	}
	for id, o := range s.orders {
		clone.orders[id] = cloneOrder(o)
	}
	return clone
}

func (s *mockState) restore(from *mockState) {
	s.categories = from.categories
	s.products = from.products
	s.users = from.users
	s.orders = from.orders
}

func cloneOrder(o model.Order) model.Order {
	items := make([]model.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

var _ model.RepositoryProvider = &mockProvider{}

type mockProvider struct {
	state *mockState
}

func (p *mockProvider) Orders() model.OrderRepository {
	return &mockOrderRepository{state: p.state}
}

func (p *mockProvider) Products() model.ProductRepository {
	return &mockProductRepository{state: p.state}
}

func (p *mockProvider) Users() model.UserRepository {
	return &mockUserRepository{state: p.state}
}

func (p *mockProvider) Categories() model.CategoryRepository {
	return &mockCategoryRepository{state: p.state}
}

var _ model.UnitOfWork = &mockUnitOfWork{}

// mockUnitOfWork models transactional rollback: when the callback fails,
// every write it performed is discarded.
type mockUnitOfWork struct {
	state *mockState
}

func (u *mockUnitOfWork) Execute(_ context.Context, fn func(provider model.RepositoryProvider) error) error {
	snapshot := u.state.snapshot()
	if err := fn(&mockProvider{state: u.state}); err != nil {
		u.state.restore(snapshot)
		return err
	}
	return nil
}

var _ model.CategoryRepository = &mockCategoryRepository{}

type mockCategoryRepository struct {
	state *mockState
}

func (m *mockCategoryRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockCategoryRepository) Create(_ context.Context, category *model.Category) error {
	m.state.categories[category.ID] = *category
	return nil
}

func (m *mockCategoryRepository) Update(_ context.Context, category *model.Category) error {
	if _, ok := m.state.categories[category.ID]; !ok {
		return model.ErrCategoryNotFound
	}
	m.state.categories[category.ID] = *category
	return nil
}

func (m *mockCategoryRepository) Find(_ context.Context, id uuid.UUID) (*model.Category, error) {
	category, ok := m.state.categories[id]
	if !ok {
		return nil, model.ErrCategoryNotFound
	}
	return &category, nil
}

func (m *mockCategoryRepository) List(_ context.Context) ([]model.Category, error) {
	categories := make([]model.Category, 0, len(m.state.categories))
	for _, c := range m.state.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *mockCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.state.categories[id]; !ok {
		return model.ErrCategoryNotFound
	}
	delete(m.state.categories, id)
	return nil
}

var _ model.ProductRepository = &mockProductRepository{}

type mockProductRepository struct {
	state *mockState
}

func (m *mockProductRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockProductRepository) Create(_ context.Context, product *model.Product) error {
	m.state.products[product.ID] = *product
	return nil
}

func (m *mockProductRepository) Update(_ context.Context, product *model.Product) error {
	if _, ok := m.state.products[product.ID]; !ok {
		return model.ErrProductNotFound
	}
	m.state.products[product.ID] = *product
	return nil
}

func (m *mockProductRepository) Find(_ context.Context, id uuid.UUID) (*model.Product, error) {
	product, ok := m.state.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return &product, nil
}

func (m *mockProductRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return m.Find(ctx, id)
}

func (m *mockProductRepository) List(_ context.Context) ([]model.Product, error) {
	return m.sortedProducts(nil), nil
}

func (m *mockProductRepository) ListPage(_ context.Context, limit, offset int) ([]model.Product, int, error) {
	products := m.sortedProducts(nil)
	return pageOf(products, limit, offset), len(products), nil
}

func (m *mockProductRepository) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	return m.sortedProducts(func(p model.Product) bool { return p.CategoryID == categoryID }), nil
}

func (m *mockProductRepository) Search(_ context.Context, term string) ([]model.Product, error) {
	return m.sortedProducts(matchName(term)), nil
}

func (m *mockProductRepository) SearchPage(_ context.Context, term string, limit, offset int) ([]model.Product, int, error) {
	products := m.sortedProducts(matchName(term))
	return pageOf(products, limit, offset), len(products), nil
}

func (m *mockProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.state.products[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(m.state.products, id)
	return nil
}

func (m *mockProductRepository) sortedProducts(keep func(model.Product) bool) []model.Product {
	products := make([]model.Product, 0, len(m.state.products))
	for _, p := range m.state.products {
		if keep == nil || keep(p) {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products
}

func matchName(term string) func(model.Product) bool {
	term = strings.ToLower(term)
	return func(p model.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term)
	}
}

func pageOf(products []model.Product, limit, offset int) []model.Product {
	if offset >= len(products) {
		return []model.Product{}
	}
	end := offset + limit
	if end > len(products) {
		end = len(products)
	}
	return products[offset:end]
}

var _ model.UserRepository = &mockUserRepository{}

type mockUserRepository struct {
	state *mockState
}

func (m *mockUserRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockUserRepository) Create(_ context.Context, user *model.User) error {
	for _, existing := range m.state.users {
		if existing.Email == user.Email {
			return model.ErrEmailTaken
		}
	}
	m.state.users[user.ID] = *user
	return nil
}

func (m *mockUserRepository) Update(_ context.Context, user *model.User) error {
	if _, ok := m.state.users[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	m.state.users[user.ID] = *user
	return nil
}

func (m *mockUserRepository) Find(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := m.state.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &user, nil
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range m.state.users {
		if user.Email == email {
			clone := user
			return &clone, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) List(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(m.state.users))
	for _, u := range m.state.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].LastName < users[j].LastName })
	return users, nil
}

func (m *mockUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.state.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(m.state.users, id)
	return nil
}

var _ model.OrderRepository = &mockOrderRepository{}

type mockOrderRepository struct {
	state *mockState
}

func (m *mockOrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockOrderRepository) Create(_ context.Context, order *model.Order) error {
	m.state.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (m *mockOrderRepository) Find(_ context.Context, id uuid.UUID) (*model.Order, error) {
	order, ok := m.state.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	clone := cloneOrder(order)
	return &clone, nil
}

func (m *mockOrderRepository) Update(_ context.Context, order *model.Order) error {
	if _, ok := m.state.orders[order.ID]; !ok {
		return model.ErrOrderNotFound
	}
	m.state.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (m *mockOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.state.orders[id]; !ok {
		return model.ErrOrderNotFound
	}
	delete(m.state.orders, id)
	return nil
}

var _ service.EventDispatcher = &mockEventDispatcher{}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
