package model

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Workspace caches the invoices, the client list and the business profile
// of one store and is the only place that creates, changes or deletes them.
//
// Every mutation computes the new collection, persists it and only then
// replaces the cached one, so a failed write leaves the cache as it was.
// Values going in or out are deep copies; a caller can never alias the cache.
// Several processes on the same store are not coordinated: the last write of
// a collection wins.
type Workspace struct {
	mu      sync.Mutex
	storage *Storage
	counter Counter
	newID   func() string
	now     func() time.Time
	logger  *slog.Logger
	matcher ClientMatchPolicy

	invoices     []Invoice
	clients      []Client
	businessInfo BusinessInfo
	current      *Invoice
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithCounter replaces the counter kept in the store.
func WithCounter(c Counter) Option { return func(w *Workspace) { w.counter = c } }

// WithClock sets the source of "today".
func WithClock(now func() time.Time) Option { return func(w *Workspace) { w.now = now } }

// WithIDGenerator replaces GenerateID.
func WithIDGenerator(f func() string) Option { return func(w *Workspace) { w.newID = f } }

// WithLogger sets the logger, slog.Default otherwise.
func WithLogger(l *slog.Logger) Option { return func(w *Workspace) { w.logger = l } }

// WithClientMatchPolicy replaces MatchByIDOrName.
func WithClientMatchPolicy(p ClientMatchPolicy) Option {
	return func(w *Workspace) { w.matcher = p }
}

// OpenWorkspace loads all collections from storage.
func OpenWorkspace(storage *Storage, opts ...Option) (*Workspace, error) {
	w := &Workspace{
		storage: storage,
		counter: NewStoreCounter(storage.KV()),
		newID:   GenerateID,
		now:     time.Now,
		logger:  slog.Default(),
		matcher: MatchByIDOrName,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.load(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Workspace) load() error {
	invoices, err := w.storage.LoadInvoices()
	if err != nil {
		return err
	}
	clients, err := w.storage.LoadClients()
	if err != nil {
		return err
	}
	info, err := w.storage.LoadBusinessInfo()
	if err != nil {
		return err
	}
	w.invoices = invoices
	w.clients = clients
	w.businessInfo = DefaultBusinessInfo()
	if info != nil {
		w.businessInfo = *info
	}
	w.current = nil
	w.logger.Debug("workspace loaded", "invoices", len(invoices), "clients", len(clients))
	return nil
}

// Invoices returns all invoices in stored order.
func (w *Workspace) Invoices() []Invoice {
	w.mu.Lock()
	defer w.mu.Unlock()
	return clone(w.invoices)
}

// Clients returns the client list.
func (w *Workspace) Clients() []Client {
	w.mu.Lock()
	defer w.mu.Unlock()
	return clone(w.clients)
}

// BusinessInfo returns the business profile.
func (w *Workspace) BusinessInfo() BusinessInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.businessInfo
}

// CurrentInvoice returns the invoice being edited, if any.
func (w *Workspace) CurrentInvoice() (Invoice, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return Invoice{}, false
	}
	return clone(*w.current), true
}

// SetCurrentInvoice stores a copy of inv as the invoice being edited. nil
// ends editing.
func (w *Workspace) SetCurrentInvoice(inv *Invoice) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if inv == nil {
		w.current = nil
		return
	}
	c := clone(*inv)
	w.current = &c
}

// newInvoice stamps a fresh invoice with the next number and the profile
// defaults.
func (w *Workspace) newInvoice() (Invoice, error) {
	id := w.newID()
	number, err := w.counter.Next()
	if err != nil {
		return Invoice{}, fmt.Errorf("next invoice number: %w", err)
	}
	now := w.now()
	return Invoice{
		ID:            id,
		InvoiceNumber: number,
		Status:        InvoiceStatusDraft,
		IssueDate:     today(now),
		DueDate:       defaultDueDate(now),
		BusinessInfo:  w.businessInfo,
		Client:        NewClient(w.newID()),
		LineItems:     []LineItem{NewLineItem(w.newID())},
		Notes:         w.businessInfo.DefaultNotes,
		PaymentTerms:  w.businessInfo.paymentTerms(),
	}, nil
}

// CreateNewInvoice starts editing a new invoice. The invoice is not saved.
func (w *Workspace) CreateNewInvoice() (Invoice, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	inv, err := w.newInvoice()
	if err != nil {
		return Invoice{}, err
	}
	current := clone(inv)
	w.current = &current
	return inv, nil
}

// SaveInvoice validates inv, stores it and registers its client when the
// client list has no match for it.
func (w *Workspace) SaveInvoice(inv Invoice) error {
	if err := ValidateInvoice(inv); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.putInvoice(inv); err != nil {
		return err
	}
	_, err := w.registerInvoiceClient(inv)
	return err
}

// SaveInvoiceAndProfile saves inv like SaveInvoice and makes its business
// snapshot the new business profile, as the invoice editor does.
func (w *Workspace) SaveInvoiceAndProfile(inv Invoice) error {
	if err := w.SaveInvoice(inv); err != nil {
		return err
	}
	return w.UpdateBusinessInfo(inv.BusinessInfo)
}

// PutInvoice replaces the invoice with the same id in place or appends inv.
// It does not validate and does not touch the client list.
func (w *Workspace) PutInvoice(inv Invoice) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.putInvoice(inv)
}

func (w *Workspace) putInvoice(inv Invoice) error {
	inv = clone(inv)
	updated := slices.Clone(w.invoices)
	if i := indexOfInvoice(updated, inv.ID); i >= 0 {
		updated[i] = inv
	} else {
		updated = append(updated, inv)
	}
	if err := w.storage.SaveInvoices(updated); err != nil {
		return err
	}
	w.invoices = updated
	w.logger.Debug("invoice saved", "invoice_id", inv.ID, "number", inv.InvoiceNumber)
	return nil
}

// RegisterInvoiceClient appends the client of inv to the client list unless
// it has no name or the match policy finds it. Existing clients are never
// updated from an invoice.
func (w *Workspace) RegisterInvoiceClient(inv Invoice) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.registerInvoiceClient(inv)
}

func (w *Workspace) registerInvoiceClient(inv Invoice) (bool, error) {
	c := inv.Client
	if c.Name == "" {
		return false, nil
	}
	if _, ok := w.matcher.Match(w.clients, c); ok {
		return false, nil
	}
	updated := append(slices.Clone(w.clients), c)
	if err := w.storage.SaveClients(updated); err != nil {
		return false, err
	}
	w.clients = updated
	w.logger.Debug("client registered from invoice", "client_id", c.ID, "invoice_id", inv.ID)
	return true, nil
}

// DeleteInvoice removes the invoice and ends editing it.
func (w *Workspace) DeleteInvoice(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	updated := slices.DeleteFunc(slices.Clone(w.invoices), func(inv Invoice) bool {
		return inv.ID == id
	})
	if err := w.storage.SaveInvoices(updated); err != nil {
		return err
	}
	w.invoices = updated
	if w.current != nil && w.current.ID == id {
		w.current = nil
	}
	w.logger.Debug("invoice deleted", "invoice_id", id)
	return nil
}

// DuplicateInvoice copies the invoice with a new id and number, status
// draft, today's dates and fresh line item ids. The copy is not saved.
func (w *Workspace) DuplicateInvoice(id string) (Invoice, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := indexOfInvoice(w.invoices, id)
	if i < 0 {
		return Invoice{}, fmt.Errorf("duplicate invoice %s: %w", id, ErrNotFound)
	}
	dup := clone(w.invoices[i])
	dup.ID = w.newID()
	number, err := w.counter.Next()
	if err != nil {
		return Invoice{}, fmt.Errorf("next invoice number: %w", err)
	}
	now := w.now()
	dup.InvoiceNumber = number
	dup.Status = InvoiceStatusDraft
	dup.IssueDate = today(now)
	dup.DueDate = defaultDueDate(now)
	for j := range dup.LineItems {
		dup.LineItems[j].ID = w.newID()
	}
	return dup, nil
}

// UpdateBusinessInfo replaces the business profile. Saved invoices keep
// their snapshot.
func (w *Workspace) UpdateBusinessInfo(info BusinessInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.storage.SaveBusinessInfo(info); err != nil {
		return err
	}
	w.businessInfo = info
	return nil
}

// AddClient appends c, assigning an id if it has none.
func (w *Workspace) AddClient(c Client) (Client, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addClient(c)
}

func (w *Workspace) addClient(c Client) (Client, error) {
	if c.ID == "" {
		c.ID = w.newID()
	}
	updated := append(slices.Clone(w.clients), c)
	if err := w.storage.SaveClients(updated); err != nil {
		return Client{}, err
	}
	w.clients = updated
	return c, nil
}

// UpdateClient replaces the client with the same id. An unknown id changes
// nothing.
func (w *Workspace) UpdateClient(c Client) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.updateClient(c)
}

func (w *Workspace) updateClient(c Client) error {
	i := indexOfClient(w.clients, c.ID)
	if i < 0 {
		w.logger.Debug("update of unknown client ignored", "client_id", c.ID)
		return nil
	}
	updated := slices.Clone(w.clients)
	updated[i] = c
	if err := w.storage.SaveClients(updated); err != nil {
		return err
	}
	w.clients = updated
	return nil
}

// SaveClient validates c and updates it if its id is known, else adds it.
func (w *Workspace) SaveClient(c Client) (Client, error) {
	if err := ValidateClient(c); err != nil {
		return Client{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if c.ID != "" && indexOfClient(w.clients, c.ID) >= 0 {
		if err := w.updateClient(c); err != nil {
			return Client{}, err
		}
		return c, nil
	}
	return w.addClient(c)
}

// DeleteClient removes a client. Invoices keep their snapshot.
func (w *Workspace) DeleteClient(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	updated := slices.DeleteFunc(slices.Clone(w.clients), func(c Client) bool {
		return c.ID == id
	})
	if err := w.storage.SaveClients(updated); err != nil {
		return err
	}
	w.clients = updated
	return nil
}

// InvoiceByID returns a copy of the invoice, ok=false if unknown.
func (w *Workspace) InvoiceByID(id string) (Invoice, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := indexOfInvoice(w.invoices, id)
	if i < 0 {
		return Invoice{}, false
	}
	return clone(w.invoices[i]), true
}

// EditableInvoice returns a copy to edit. Changing it has no effect until it
// is saved.
func (w *Workspace) EditableInvoice(id string) (Invoice, bool) {
	return w.InvoiceByID(id)
}

// InvoiceByNumber looks an invoice up by its invoice number.
func (w *Workspace) InvoiceByNumber(number string) (Invoice, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, inv := range w.invoices {
		if inv.InvoiceNumber == number {
			return clone(inv), true
		}
	}
	return Invoice{}, false
}

// ClearAll wipes the store, including the business profile and the
// counter, and resets the cache to a fresh installation.
func (w *Workspace) ClearAll() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.storage.Clear(); err != nil {
		return err
	}
	w.invoices = []Invoice{}
	w.clients = []Client{}
	w.businessInfo = DefaultBusinessInfo()
	w.current = nil
	w.logger.Info("all data cleared")
	return nil
}

func indexOfInvoice(invoices []Invoice, id string) int {
	return slices.IndexFunc(invoices, func(inv Invoice) bool { return inv.ID == id })
}

func indexOfClient(clients []Client, id string) int {
	return slices.IndexFunc(clients, func(c Client) bool { return c.ID == id })
}
