// Package memory implementa el surtido completo de repositorios sobre mapas
// en memoria, con semántica transaccional real: Run clona el estado, ejecuta
// el callback contra el clon y solo publica el clon si no hubo error. Un
// fallo a mitad de operación no deja efectos parciales, igual que un
// Rollback de PostgreSQL. Se usa en los tests de casos de uso y en modo demo.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Store estado en memoria + mutex. Implementa repository.TxRunner.
type Store struct {
	mu sync.Mutex
	st *state
}

type state struct {
	companies  map[string]entity.Company
	branches   map[string]entity.Branch
	invoiceSeq map[string]int64 // branchID|year -> última secuencia
	employees  map[string]entity.Employee
	customers  map[string]entity.Customer
	items      map[string]entity.Item
	variations map[string]entity.Variation
	inventory  map[string]entity.InventoryItem // locType|locID|variationID
	register   []entity.StockRegisterEntry
	sales      map[string]entity.Sale
	saleItems  map[string][]entity.SaleItem
	returns    map[string]entity.SaleReturn
	accounts   map[string]entity.MoneyAccount // accType|ownerID
	finTxns    []entity.FinancialTransaction
	transfers  map[string]entity.StockTransfer
	requests   map[string]entity.StockRequest
	registers  map[string]entity.CounterRegister
	handovers  map[string]entity.CashHandover
}

// New construye un Store vacío.
func New() *Store {
	return &Store{st: newState()}
}

func newState() *state {
	return &state{
		companies:  map[string]entity.Company{},
		branches:   map[string]entity.Branch{},
		invoiceSeq: map[string]int64{},
		employees:  map[string]entity.Employee{},
		customers:  map[string]entity.Customer{},
		items:      map[string]entity.Item{},
		variations: map[string]entity.Variation{},
		inventory:  map[string]entity.InventoryItem{},
		sales:      map[string]entity.Sale{},
		saleItems:  map[string][]entity.SaleItem{},
		returns:    map[string]entity.SaleReturn{},
		accounts:   map[string]entity.MoneyAccount{},
		transfers:  map[string]entity.StockTransfer{},
		requests:   map[string]entity.StockRequest{},
		registers:  map[string]entity.CounterRegister{},
		handovers:  map[string]entity.CashHandover{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.companies {
		c.companies[k] = v
	}
	for k, v := range s.branches {
		c.branches[k] = v
	}
	for k, v := range s.invoiceSeq {
		c.invoiceSeq[k] = v
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.variations {
		c.variations[k] = v
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	c.register = append(c.register, s.register...)
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.saleItems {
		c.saleItems[k] = append([]entity.SaleItem(nil), v...)
	}
	for k, v := range s.returns {
		c.returns[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	c.finTxns = append(c.finTxns, s.finTxns...)
	for k, v := range s.transfers {
		c.transfers[k] = v
	}
	for k, v := range s.requests {
		c.requests[k] = v
	}
	for k, v := range s.registers {
		c.registers[k] = v
	}
	for k, v := range s.handovers {
		c.handovers[k] = v
	}
	return c
}

var _ repository.TxRunner = (*Store)(nil)

// Run ejecuta fn contra un clon del estado y publica el clon solo si fn
// retorna nil (commit). El mutex serializa las transacciones.
func (s *Store) Run(_ context.Context, fn func(tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := s.st.clone()
	if err := fn(txOf(access{st: clone})); err != nil {
		return err
	}
	s.st = clone
	return nil
}

// access indirección a un estado: dentro de tx apunta al clon (sin lock,
// Run ya sostiene el mutex); fuera de tx toma el mutex por operación.
type access struct {
	st    *state
	store *Store
}

func (a access) do(fn func(st *state)) {
	if a.store != nil {
		a.store.mu.Lock()
		defer a.store.mu.Unlock()
		fn(a.store.st)
		return
	}
	fn(a.st)
}

func txOf(a access) repository.Tx {
	return repository.Tx{
		Branches:      branchRepo{a},
		Customers:     customerRepo{a},
		Items:         itemRepo{a},
		Inventory:     inventoryRepo{a},
		StockRegister: registerRepo{a},
		Sales:         saleRepo{a},
		Returns:       returnRepo{a},
		Accounts:      accountRepo{a},
		Transfers:     transferRepo{a},
		Shifts:        shiftRepo{a},
	}
}

// Repos devuelve los repositorios fuera de transacción (lecturas sueltas y
// CRUD simple). Comparten el mutex del Store.
func (s *Store) Repos() repository.Tx {
	return txOf(access{store: s})
}

// Employees repositorio de empleados (fuera de tx).
func (s *Store) Employees() repository.EmployeeRepository {
	return employeeRepo{access{store: s}}
}

// Companies repositorio de empresas (fuera de tx).
func (s *Store) Companies() repository.CompanyRepository {
	return companyRepo{access{store: s}}
}

// StockRequests repositorio de solicitudes (fuera de tx).
func (s *Store) StockRequests() repository.StockRequestRepository {
	return requestRepo{access{store: s}}
}

// ── Helpers de siembra para tests y modo demo ────────────────────────────────

// PutCompany inserta/reemplaza una empresa.
func (s *Store) PutCompany(c entity.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.companies[c.ID] = c
}

// PutBranch inserta/reemplaza una sucursal.
func (s *Store) PutBranch(b entity.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.branches[b.ID] = b
}

// PutEmployee inserta/reemplaza un empleado.
func (s *Store) PutEmployee(e entity.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.employees[e.ID] = e
}

// PutCustomer inserta/reemplaza un cliente.
func (s *Store) PutCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.customers[c.ID] = c
}

// PutItem inserta/reemplaza un artículo.
func (s *Store) PutItem(i entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.items[i.ID] = i
}

// PutVariation inserta/reemplaza una variación.
func (s *Store) PutVariation(v entity.Variation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.variations[v.ID] = v
}

// SetStock fija el stock de un pool (crea la fila si no existe).
func (s *Store) SetStock(loc entity.Location, variationID string, stock, mrp, discount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.inventory[poolKey(loc, variationID)] = entity.InventoryItem{
		LocationType: loc.Type,
		LocationID:   loc.ID,
		VariationID:  variationID,
		Stock:        stock,
		MRP:          mrp,
		Discount:     discount,
		UpdatedAt:    time.Now(),
	}
}

// Stock devuelve el stock actual de un pool (cero si no existe la fila).
func (s *Store) Stock(loc entity.Location, variationID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.inventory[poolKey(loc, variationID)].Stock
}

// AccountBalance devuelve el saldo actual de una cuenta (cero si no existe).
func (s *Store) AccountBalance(accType, ownerID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.accounts[accountKey(accType, ownerID)].Balance
}

// FinancialTransactions devuelve una copia del registro de auditoría.
func (s *Store) FinancialTransactions() []entity.FinancialTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.FinancialTransaction(nil), s.st.finTxns...)
}

// RegisterEntries devuelve una copia del libro de inventario.
func (s *Store) RegisterEntries() []entity.StockRegisterEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockRegisterEntry(nil), s.st.register...)
}

func poolKey(loc entity.Location, variationID string) string {
	return loc.Type + "|" + loc.ID + "|" + variationID
}

func accountKey(accType, ownerID string) string {
	return accType + "|" + ownerID
}

func seqKey(branchID string, year int) string {
	return fmt.Sprintf("%s|%d", branchID, year)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
