package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Un tipo pequeño por repositorio, todos sobre el mismo access. Los métodos
// *ForUpdate no bloquean nada extra: Run ya serializa con el mutex del Store.

type companyRepo struct{ a access }
type branchRepo struct{ a access }
type employeeRepo struct{ a access }
type itemRepo struct{ a access }
type customerRepo struct{ a access }
type inventoryRepo struct{ a access }
type registerRepo struct{ a access }
type saleRepo struct{ a access }
type returnRepo struct{ a access }
type accountRepo struct{ a access }
type transferRepo struct{ a access }
type requestRepo struct{ a access }
type shiftRepo struct{ a access }

var (
	_ repository.CompanyRepository       = companyRepo{}
	_ repository.BranchRepository        = branchRepo{}
	_ repository.EmployeeRepository      = employeeRepo{}
	_ repository.ItemRepository          = itemRepo{}
	_ repository.CustomerRepository      = customerRepo{}
	_ repository.InventoryRepository     = inventoryRepo{}
	_ repository.StockRegisterRepository = registerRepo{}
	_ repository.SaleRepository          = saleRepo{}
	_ repository.SaleReturnRepository    = returnRepo{}
	_ repository.AccountRepository       = accountRepo{}
	_ repository.TransferRepository      = transferRepo{}
	_ repository.StockRequestRepository  = requestRepo{}
	_ repository.ShiftRepository         = shiftRepo{}
)

func paginate[T any](xs []T, limit, offset int) []T {
	if offset >= len(xs) {
		return nil
	}
	xs = xs[offset:]
	if limit > 0 && limit < len(xs) {
		xs = xs[:limit]
	}
	return xs
}

// ── Company ──────────────────────────────────────────────────────────────────

func (r companyRepo) GetByID(id string) (c *entity.Company, err error) {
	r.a.do(func(st *state) {
		if v, ok := st.companies[id]; ok {
			cp := v
			c = &cp
		} else {
			err = domain.ErrNotFound
		}
	})
	return
}

// ── Branch ───────────────────────────────────────────────────────────────────

func (r branchRepo) GetByID(id string) (b *entity.Branch, err error) {
	r.a.do(func(st *state) {
		if v, ok := st.branches[id]; ok {
			cp := v
			b = &cp
		} else {
			err = domain.ErrNotFound
		}
	})
	return
}

func (r branchRepo) List(companyID string) (out []*entity.Branch, err error) {
	r.a.do(func(st *state) {
		for _, v := range st.branches {
			if v.CompanyID == companyID {
				cp := v
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	})
	return
}

func (r branchRepo) NextInvoiceSeq(branchID string, year int) (seq int64, err error) {
	r.a.do(func(st *state) {
		if _, ok := st.branches[branchID]; !ok {
			err = domain.ErrNotFound
			return
		}
		k := seqKey(branchID, year)
		st.invoiceSeq[k]++
		seq = st.invoiceSeq[k]
	})
	return
}

// ── Employee ─────────────────────────────────────────────────────────────────

func (r employeeRepo) Create(e *entity.Employee) (err error) {
	r.a.do(func(st *state) {
		for _, ex := range st.employees {
			if ex.CompanyID == e.CompanyID && ex.Email == e.Email {
				err = domain.ErrDuplicate
				return
			}
		}
		st.employees[e.ID] = *e
	})
	return
}

func (r employeeRepo) GetByID(id string) (e *entity.Employee, err error) {
	r.a.do(func(st *state) {
		if v, ok := st.employees[id]; ok {
			cp := v
			e = &cp
		} else {
			err = domain.ErrNotFound
		}
	})
	return
}

func (r employeeRepo) GetByEmail(companyID, email string) (e *entity.Employee, err error) {
	r.a.do(func(st *state) {
		for _, v := range st.employees {
			if v.CompanyID == companyID && v.Email == email {
				cp := v
				e = &cp
				return
			}
		}
		err = domain.ErrNotFound
	})
	return
}

// ── Item ─────────────────────────────────────────────────────────────────────

func (r itemRepo) GetByID(id string) (it *entity.Item, err error) {
	r.a.do(func(st *state) {
		if v, ok := st.items[id]; ok {
			cp := v
			it = &cp
		} else {
			err = domain.ErrNotFound
		}
	})
	return
}

func (r itemRepo) GetVariation(id string) (v *entity.Variation, err error) {
	r.a.do(func(st *state) {
		if x, ok := st.variations[id]; ok {
			cp := x
			v = &cp
		} else {
			err = domain.ErrNotFound
		}
	})
	return
}

// ── Customer ─────────────────────────────────────────────────────────────────

func (r customerRepo) Create(c *entity.Customer) (err error) {
	r.a.do(func(st *state) {
		if _, ok := st.customers[c.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		st.customers[c.ID] = *c
	})
	return
}

func (r customerRepo) GetByID(id string) (c *entity.Customer, err error) {
	r.a.do(func(st *state) {
		if v, ok := st.customers[id]; ok {
			cp := v
			c = &cp
		} else {
			err = domain.ErrNotFound
		}
	})
	return
}

func (r customerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r customerRepo) UpdateBalance(id string, balance decimal.Decimal) (err error) {
	r.a.do(func(st *state) {
		v, ok := st.customers[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		v.Balance = balance
		v.UpdatedAt = time.Now()
		st.customers[id] = v
	})
	return
}

func (r customerRepo) List(companyID string, limit, offset int) (out []*entity.Customer, err error) {
	r.a.do(func(st *state) {
		for _, v := range st.customers {
			if v.CompanyID == companyID {
				cp := v
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		out = paginate(out, limit, offset)
	})
	return
}

// ── Inventory ────────────────────────────────────────────────────────────────

func (r inventoryRepo) Get(loc entity.Location, variationID string) (it *entity.InventoryItem, err error) {
	r.a.do(func(st *state) {
		if v, ok := st.inventory[poolKey(loc, variationID)]; ok {
			cp := v
			it = &cp
			return
		}
		// Fila inexistente: se devuelve en cero sin crearla (UpdatedAt cero
		// delata que es nueva).
		it = &entity.InventoryItem{
			LocationType: loc.Type,
			LocationID:   loc.ID,
			VariationID:  variationID,
		}
	})
	return
}

func (r inventoryRepo) GetForUpdate(loc entity.Location, variationID string) (*entity.InventoryItem, error) {
	return r.Get(loc, variationID)
}

func (r inventoryRepo) Upsert(item *entity.InventoryItem) (err error) {
	r.a.do(func(st *state) {
		loc := entity.Location{Type: item.LocationType, ID: item.LocationID}
		st.inventory[poolKey(loc, item.VariationID)] = *item
	})
	return
}

// ── StockRegister ────────────────────────────────────────────────────────────

func (r registerRepo) Create(e *entity.StockRegisterEntry) (err error) {
	r.a.do(func(st *state) {
		st.register = append(st.register, *e)
	})
	return
}

func (r registerRepo) ListByReference(referenceID string) (out []*entity.StockRegisterEntry, err error) {
	r.a.do(func(st *state) {
		for i := range st.register {
			if st.register[i].ReferenceID == referenceID {
				cp := st.register[i]
				out = append(out, &cp)
			}
		}
	})
	return
}

func (r registerRepo) ListByLocation(loc entity.Location, variationID string, limit, offset int) (out []*entity.StockRegisterEntry, err error) {
	r.a.do(func(st *state) {
		// Más reciente primero, como el ORDER BY transaction_date DESC de la BD.
		for i := len(st.register) - 1; i >= 0; i-- {
			e := st.register[i]
			if e.LocationType != loc.Type || e.LocationID != loc.ID {
				continue
			}
			if variationID != "" && e.VariationID != variationID {
				continue
			}
			cp := e
			out = append(out, &cp)
		}
		out = paginate(out, limit, offset)
	})
	return
}

func (r registerRepo) GetSaleEntry(saleID, variationID string) (out *entity.StockRegisterEntry, err error) {
	r.a.do(func(st *state) {
		for i := range st.register {
			e := st.register[i]
			if e.ReferenceID == saleID && e.VariationID == variationID &&
				e.TransactionType == entity.TxnSale && e.FlowType == entity.FlowOut {
				cp := e
				out = &cp
				return
			}
		}
		err = domain.ErrNotFound
	})
	return
}

func (r registerRepo) SumReturnedQuantity(saleID, variationID string) (sum decimal.Decimal, err error) {
	r.a.do(func(st *state) {
		returnIDs := map[string]bool{}
		for id, ret := range st.returns {
			if ret.SaleID == saleID {
				returnIDs[id] = true
			}
		}
		for i := range st.register {
			e := st.register[i]
			if e.TransactionType == entity.TxnSaleReturn && e.FlowType == entity.FlowIn &&
				e.VariationID == variationID && returnIDs[e.ReferenceID] {
				sum = sum.Add(e.Quantity)
			}
		}
	})
	return
}

// ── Sale ─────────────────────────────────────────────────────────────────────

func (r saleRepo) Create(s *entity.Sale) (err error) {
	r.a.do(func(st *state) {
		if _, ok := st.sales[s.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		for _, ex := range st.sales {
			if ex.BranchID == s.BranchID && ex.InvoiceNumber == s.InvoiceNumber {
				err = domain.ErrConflict
				return
			}
		}
		st.sales[s.ID] = *s
	})
	return
}

func (r saleRepo) CreateItem(it *entity.SaleItem) (err error) {
	r.a.do(func(st *state) {
		st.saleItems[it.SaleID] = append(st.saleItems[it.SaleID], *it)
	})
	return
}

func (r saleRepo) GetByID(id string) (s *entity.Sale, err error) {
	r.a.do(func(st *state) {
		if v, ok := st.sales[id]; ok {
			cp := v
			s = &cp
		} else {
			err = domain.ErrNotFound
		}
	})
	return
}

func (r saleRepo) GetItems(saleID string) (out []*entity.SaleItem, err error) {
	r.a.do(func(st *state) {
		for _, v := range st.saleItems[saleID] {
			cp := v
			out = append(out, &cp)
		}
	})
	return
}

func (r saleRepo) ListByBranch(branchID string, limit, offset int) (out []*entity.Sale, err error) {
	r.a.do(func(st *state) {
		for _, v := range st.sales {
			if v.BranchID == branchID {
				cp := v
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		out = paginate(out, limit, offset)
	})
	return
}

// ── SaleReturn ───────────────────────────────────────────────────────────────

func (r returnRepo) Create(ret *entity.SaleReturn) (err error) {
	r.a.do(func(st *state) {
		if _, ok := st.returns[ret.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		st.returns[ret.ID] = *ret
	})
	return
}

func (r returnRepo) GetByID(id string) (ret *entity.SaleReturn, err error) {
	r.a.do(func(st *state) {
		if v, ok := st.returns[id]; ok {
			cp := v
			ret = &cp
		} else {
			err = domain.ErrNotFound
		}
	})
	return
}

func (r returnRepo) ListBySale(saleID string) (out []*entity.SaleReturn, err error) {
	r.a.do(func(st *state) {
		for _, v := range st.returns {
			if v.SaleID == saleID {
				cp := v
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	})
	return
}

// ── Account ──────────────────────────────────────────────────────────────────

func (r accountRepo) Get(accType, ownerID string) (acc *entity.MoneyAccount, err error) {
	r.a.do(func(st *state) {
		if v, ok := st.accounts[accountKey(accType, ownerID)]; ok {
			cp := v
			acc = &cp
			return
		}
		acc = &entity.MoneyAccount{Type: accType, OwnerID: ownerID}
	})
	return
}

func (r accountRepo) GetForUpdate(accType, ownerID string) (acc *entity.MoneyAccount, err error) {
	r.a.do(func(st *state) {
		k := accountKey(accType, ownerID)
		if v, ok := st.accounts[k]; ok {
			cp := v
			acc = &cp
			return
		}
		// Creación perezosa con saldo cero.
		created := entity.MoneyAccount{
			ID:        uuid.New().String(),
			Type:      accType,
			OwnerID:   ownerID,
			UpdatedAt: time.Now(),
		}
		st.accounts[k] = created
		cp := created
		acc = &cp
	})
	return
}

func (r accountRepo) UpdateBalance(id string, balance decimal.Decimal) (err error) {
	r.a.do(func(st *state) {
		for k, v := range st.accounts {
			if v.ID == id {
				v.Balance = balance
				v.UpdatedAt = time.Now()
				st.accounts[k] = v
				return
			}
		}
		err = domain.ErrNotFound
	})
	return
}

func (r accountRepo) CreateFinancialTransaction(ft *entity.FinancialTransaction) (err error) {
	r.a.do(func(st *state) {
		st.finTxns = append(st.finTxns, *ft)
	})
	return
}

func (r accountRepo) ListFinancialTransactions(branchID string, limit, offset int) (out []*entity.FinancialTransaction, err error) {
	r.a.do(func(st *state) {
		for i := len(st.finTxns) - 1; i >= 0; i-- {
			if st.finTxns[i].BranchID == branchID {
				cp := st.finTxns[i]
				out = append(out, &cp)
			}
		}
		out = paginate(out, limit, offset)
	})
	return
}

// ── Transfer ─────────────────────────────────────────────────────────────────

func (r transferRepo) Create(t *entity.StockTransfer) (err error) {
	r.a.do(func(st *state) {
		if _, ok := st.transfers[t.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		st.transfers[t.ID] = *t
	})
	return
}

func (r transferRepo) ListByBatch(batchID string) (out []*entity.StockTransfer, err error) {
	r.a.do(func(st *state) {
		for _, v := range st.transfers {
			if v.BatchID == batchID {
				cp := v
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].VariationID < out[j].VariationID })
	})
	return
}

func (r transferRepo) ListUnacknowledgedByBatch(batchID string) (out []*entity.StockTransfer, err error) {
	r.a.do(func(st *state) {
		for _, v := range st.transfers {
			if v.BatchID == batchID && !v.Acknowledge {
				cp := v
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].VariationID < out[j].VariationID })
	})
	return
}

func (r transferRepo) MarkAcknowledged(id string, received, lost decimal.Decimal, at time.Time) (err error) {
	r.a.do(func(st *state) {
		v, ok := st.transfers[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		v.Acknowledge = true
		v.ReceivedQuantity = received
		v.LostQuantity = lost
		ts := at
		v.AcknowledgedAt = &ts
		st.transfers[id] = v
	})
	return
}

// ── StockRequest ─────────────────────────────────────────────────────────────

func (r requestRepo) Create(req *entity.StockRequest) (err error) {
	r.a.do(func(st *state) {
		if _, ok := st.requests[req.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		st.requests[req.ID] = *req
	})
	return
}

func (r requestRepo) GetByID(id string) (req *entity.StockRequest, err error) {
	r.a.do(func(st *state) {
		if v, ok := st.requests[id]; ok {
			cp := v
			req = &cp
		} else {
			err = domain.ErrNotFound
		}
	})
	return
}

func (r requestRepo) ListByBatch(batchID string) (out []*entity.StockRequest, err error) {
	r.a.do(func(st *state) {
		for _, v := range st.requests {
			if v.BatchID == batchID {
				cp := v
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].VariationID < out[j].VariationID })
	})
	return
}

func (r requestRepo) ListByBranch(branchID string, limit, offset int) (out []*entity.StockRequest, err error) {
	r.a.do(func(st *state) {
		for _, v := range st.requests {
			if v.BranchID == branchID {
				cp := v
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].RequestDate.After(out[j].RequestDate) })
		out = paginate(out, limit, offset)
	})
	return
}

func (r requestRepo) UpdateStatus(id, status string) (err error) {
	r.a.do(func(st *state) {
		v, ok := st.requests[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		v.Status = status
		v.UpdatedAt = time.Now()
		st.requests[id] = v
	})
	return
}

// ── Shift / Handover ─────────────────────────────────────────────────────────

func (r shiftRepo) CreateRegister(reg *entity.CounterRegister) (err error) {
	r.a.do(func(st *state) {
		if _, ok := st.registers[reg.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		st.registers[reg.ID] = *reg
	})
	return
}

func (r shiftRepo) GetOpenRegister(billerID string, day time.Time) (reg *entity.CounterRegister, err error) {
	r.a.do(func(st *state) {
		for _, v := range st.registers {
			if v.BillerID == billerID && v.Status == entity.RegisterOpen && sameDay(v.ShiftStart, day) {
				cp := v
				reg = &cp
				return
			}
		}
	})
	return
}

func (r shiftRepo) GetOpenRegisterForUpdate(billerID string, day time.Time) (*entity.CounterRegister, error) {
	return r.GetOpenRegister(billerID, day)
}

func (r shiftRepo) GetRegisterByID(id string) (reg *entity.CounterRegister, err error) {
	r.a.do(func(st *state) {
		if v, ok := st.registers[id]; ok {
			cp := v
			reg = &cp
		} else {
			err = domain.ErrNotFound
		}
	})
	return
}

func (r shiftRepo) CloseRegister(id string, closing decimal.Decimal, end time.Time) (err error) {
	r.a.do(func(st *state) {
		v, ok := st.registers[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		v.Status = entity.RegisterClosed
		v.ClosingBalance = closing
		ts := end
		v.ShiftEnd = &ts
		st.registers[id] = v
	})
	return
}

func (r shiftRepo) CreateHandover(h *entity.CashHandover) (err error) {
	r.a.do(func(st *state) {
		if _, ok := st.handovers[h.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		st.handovers[h.ID] = *h
	})
	return
}

func (r shiftRepo) GetHandoverByID(id string) (h *entity.CashHandover, err error) {
	r.a.do(func(st *state) {
		if v, ok := st.handovers[id]; ok {
			cp := v
			h = &cp
		} else {
			err = domain.ErrNotFound
		}
	})
	return
}

func (r shiftRepo) GetHandoverForUpdate(id string) (*entity.CashHandover, error) {
	return r.GetHandoverByID(id)
}

func (r shiftRepo) ListBlockingByBiller(billerID string) (out []*entity.CashHandover, err error) {
	r.a.do(func(st *state) {
		approvedByRegister := map[string]bool{}
		for _, v := range st.handovers {
			if v.Status == entity.HandoverApproved {
				approvedByRegister[v.RegisterID] = true
			}
		}
		for _, v := range st.handovers {
			if v.BillerID != billerID {
				continue
			}
			blocking := v.Status == entity.HandoverPending ||
				(v.Status == entity.HandoverRejected && !approvedByRegister[v.RegisterID])
			if blocking {
				cp := v
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	})
	return
}

func (r shiftRepo) GetNonRejectedByRegister(registerID string) (h *entity.CashHandover, err error) {
	r.a.do(func(st *state) {
		for _, v := range st.handovers {
			if v.RegisterID == registerID && v.Status != entity.HandoverRejected {
				cp := v
				h = &cp
				return
			}
		}
	})
	return
}

func (r shiftRepo) UpdateHandoverStatus(id, status, managerID, remarks string, at time.Time) (err error) {
	r.a.do(func(st *state) {
		v, ok := st.handovers[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		v.Status = status
		if managerID != "" {
			v.ManagerID = managerID
		}
		if remarks != "" {
			v.Remarks = remarks
		}
		ts := at
		v.ApprovalDate = &ts
		st.handovers[id] = v
	})
	return
}
