package board

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nhle/kanban-board/internal/model"
)

// DisplayDateLayout formats created/updated labels for new tasks.
const DisplayDateLayout = "02 Jan 2006"

// DragRef is the task picked up by an in-flight drag.
type DragRef struct {
	TaskID string
	Column model.ColumnID
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger   *log.Logger
	now      func() time.Time
	user     model.UserConfig
	idPrefix string
}

// WithLogger routes engine diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock overrides the time source used for new-task labels.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithCurrentUser sets the identity used by AssignToCurrentUser.
func WithCurrentUser(name, initials string) Option {
	return func(o *options) {
		o.user = model.UserConfig{Name: name, Initials: initials}
	}
}

// WithIDPrefix sets the prefix of minted task IDs.
func WithIDPrefix(prefix string) Option {
	return func(o *options) { o.idPrefix = prefix }
}

// Engine is the single mutator of board state. All methods are meant to be
// called from one goroutine (the UI update loop). Each call completes its
// whole transition, including side-store rekeys, before returning.
type Engine struct {
	board       *Board
	comments    *SideStore[model.Comment]
	attachments *SideStore[model.Attachment]
	labels      *SideStore[string]

	session  Session
	dragging *DragRef

	user   model.UserConfig
	now    func() time.Time
	logger *log.Logger
}

// NewEngine builds an engine from seed. Side entries whose key does not
// match a seeded task's column are discarded.
func NewEngine(seed Seed, opts ...Option) *Engine {
	o := options{
		logger:   log.New(io.Discard),
		now:      time.Now,
		user:     model.UserConfig{Name: "Usuario actual", Initials: "UA"},
		idPrefix: "KB",
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.user.Initials == "" {
		o.user.Initials = model.Initials(o.user.Name)
	}

	e := &Engine{
		board:       New(seed.Columns, o.idPrefix),
		comments:    NewSideStore[model.Comment]("comments"),
		attachments: NewSideStore[model.Attachment]("attachments"),
		labels:      NewSideStore[string]("labels"),
		session:     Closed{},
		user:        o.user,
		now:         o.now,
		logger:      o.logger,
	}

	for k, v := range seed.Comments {
		if e.resides(k) {
			e.comments.Set(k, v)
		}
	}
	for k, v := range seed.Attachments {
		if e.resides(k) {
			e.attachments.Set(k, v)
		}
	}
	for k, v := range seed.Labels {
		if e.resides(k) {
			e.labels.Set(k, dedupeLabels(v))
		}
	}

	e.logger.Debug("board ready", "tasks", e.board.Len(), "next_id", e.board.NextID())
	return e
}

// resides reports whether key points at the task's current column.
func (e *Engine) resides(key model.SideKey) bool {
	_, col, ok := e.board.Find(key.TaskID, key.ColumnID)
	return ok && col == key.ColumnID
}

// === Read model ===

// Columns returns the column registry.
func (e *Engine) Columns() []model.Column {
	return model.Columns()
}

// Tasks returns the tasks in column.
func (e *Engine) Tasks(column model.ColumnID) []model.Task {
	return e.board.Tasks(column)
}

// Snapshot returns every column's tasks.
func (e *Engine) Snapshot() map[model.ColumnID][]model.Task {
	return e.board.Snapshot()
}

// Filtered returns each column's tasks narrowed by f.
func (e *Engine) Filtered(f Filter) map[model.ColumnID][]model.Task {
	out := make(map[model.ColumnID][]model.Task)
	for _, c := range model.Columns() {
		out[c.ID] = f.Apply(e.board.Tasks(c.ID))
	}
	return out
}

// Find looks a task up by ID with an optional column hint.
func (e *Engine) Find(taskID string, hint model.ColumnID) (model.Task, model.ColumnID, bool) {
	return e.board.Find(taskID, hint)
}

// Owners returns the distinct assignees on the board.
func (e *Engine) Owners() []string {
	return e.board.Owners()
}

// Session returns the current selection state.
func (e *Engine) Session() Session {
	return e.session
}

// Selected returns the selected task's committed record and column.
func (e *Engine) Selected() (model.Task, model.ColumnID, bool) {
	return selection(e.session)
}

// SelectedKey returns the side key of the selected task.
func (e *Engine) SelectedKey() (model.SideKey, bool) {
	t, col, ok := selection(e.session)
	if !ok {
		return model.SideKey{}, false
	}
	return model.KeyFor(t.ID, col), true
}

// Dragging returns the task picked up by an in-flight drag.
func (e *Engine) Dragging() (DragRef, bool) {
	if e.dragging == nil {
		return DragRef{}, false
	}
	return *e.dragging, true
}

// CurrentUser returns the identity used by AssignToCurrentUser.
func (e *Engine) CurrentUser() model.UserConfig {
	return e.user
}

// Comments returns the comments under key.
func (e *Engine) Comments(key model.SideKey) []model.Comment {
	return e.comments.Get(key)
}

// Attachments returns the attachments under key.
func (e *Engine) Attachments(key model.SideKey) []model.Attachment {
	return e.attachments.Get(key)
}

// Labels returns the labels under key.
func (e *Engine) Labels(key model.SideKey) []string {
	return e.labels.Get(key)
}

// === Board operations ===

// AddTask creates a task with default fields in the pending column.
func (e *Engine) AddTask() model.Task {
	t := e.board.AddTask(e.now().Format(DisplayDateLayout))
	e.logger.Info("task created", "task", t.ID)
	return t
}

// OnDragStart records the task being dragged.
func (e *Engine) OnDragStart(column model.ColumnID, taskID string) {
	e.dragging = &DragRef{TaskID: taskID, Column: column}
	e.logger.Debug("drag start", "task", taskID, "column", column)
}

// OnDragEnd clears the drag without moving anything. Called after a drop
// it is a no-op; called alone it cancels the drag.
func (e *Engine) OnDragEnd() {
	if e.dragging != nil {
		e.logger.Debug("drag cancelled", "task", e.dragging.TaskID)
	}
	e.dragging = nil
}

// OnDrop moves the dragged task to target. A drop with no drag in flight,
// a stale origin or an unknown target changes nothing.
func (e *Engine) OnDrop(target model.ColumnID) bool {
	if e.dragging == nil {
		return false
	}
	ref := *e.dragging
	e.dragging = nil

	mv, ok := e.board.Move(ref.Column, ref.TaskID, target)
	if !ok {
		e.logger.Debug("drop ignored", "task", ref.TaskID, "from", ref.Column, "to", target)
		return false
	}
	e.applyMove(mv)
	e.followSelection(mv)
	return true
}

// applyMove rekeys every side-store when the task changed columns.
func (e *Engine) applyMove(mv Move) {
	if !mv.CrossColumn() {
		e.logger.Debug("task reordered", "task", mv.TaskID, "column", mv.To)
		return
	}
	rekeyed := make([]string, 0, 3)
	if e.comments.Rekey(mv.TaskID, mv.From, mv.To) {
		rekeyed = append(rekeyed, e.comments.Name())
	}
	if e.attachments.Rekey(mv.TaskID, mv.From, mv.To) {
		rekeyed = append(rekeyed, e.attachments.Name())
	}
	if e.labels.Rekey(mv.TaskID, mv.From, mv.To) {
		rekeyed = append(rekeyed, e.labels.Name())
	}
	e.logger.Info("task moved",
		"task", mv.TaskID,
		"from", mv.From,
		"to", mv.To,
		"rekeyed", strings.Join(rekeyed, ","),
	)
}

// followSelection keeps the selected record in step with a drag of the
// same task.
func (e *Engine) followSelection(mv Move) {
	switch st := e.session.(type) {
	case Viewing:
		if st.Task.ID == mv.TaskID {
			e.session = Viewing{Task: mv.Task, Column: mv.To}
		}
	case Editing:
		if st.Task.ID == mv.TaskID {
			draft := st.Draft
			if draft.Status == st.Task.Status {
				draft.Status = mv.Task.Status
			}
			e.session = Editing{Task: mv.Task, Column: mv.To, Draft: draft}
		}
	}
}

// === Selection and drafts ===

// OpenTask selects a task in Viewing state. The column is a lookup hint.
func (e *Engine) OpenTask(column model.ColumnID, taskID string) bool {
	t, col, ok := e.board.Find(taskID, column)
	if !ok {
		e.logger.Debug("open ignored", "task", taskID)
		return false
	}
	e.session = Viewing{Task: t, Column: col}
	return true
}

// OpenDeepLink resolves a shell request and opens the task.
func (e *Engine) OpenDeepLink(link model.DeepLink) bool {
	if link.TaskID == "" {
		return false
	}
	return e.OpenTask(link.ColumnID, link.TaskID)
}

// CloseTask clears the selection, discarding any draft.
func (e *Engine) CloseTask() {
	e.session = Closed{}
}

// StartEdit snapshots the selected record into a draft.
func (e *Engine) StartEdit() bool {
	v, ok := e.session.(Viewing)
	if !ok {
		return false
	}
	e.session = startEditing(v)
	return true
}

// EditDraft applies fn to the draft. The draft's ID cannot change.
func (e *Engine) EditDraft(fn func(*model.Task)) bool {
	ed, ok := e.session.(Editing)
	if !ok {
		return false
	}
	draft := ed.Draft
	fn(&draft)
	draft.ID = ed.Task.ID
	ed.Draft = draft
	e.session = ed
	return true
}

// Draft returns the draft while editing.
func (e *Engine) Draft() (model.Task, bool) {
	ed, ok := e.session.(Editing)
	if !ok {
		return model.Task{}, false
	}
	return ed.Draft, true
}

// CancelEdit discards the draft and returns to Viewing. It is safe to call
// in any state.
func (e *Engine) CancelEdit() {
	if ed, ok := e.session.(Editing); ok {
		e.session = Viewing{Task: ed.Task, Column: ed.Column}
	}
}

// ResetDraft re-snapshots the draft from the committed record and stays
// in Editing.
func (e *Engine) ResetDraft() bool {
	ed, ok := e.session.(Editing)
	if !ok {
		return false
	}
	ed.Draft = ed.Task
	e.session = ed
	return true
}

// SaveEdit commits a dirty draft. The task lands in the column titled by
// the draft's status and its side entries follow it. A clean draft, a
// blank title or a stale selection leaves everything unchanged.
func (e *Engine) SaveEdit() bool {
	ed, ok := e.session.(Editing)
	if !ok {
		return false
	}
	if !ed.CanSave() {
		e.logger.Debug("save ignored", "task", ed.Task.ID, "dirty", ed.Dirty())
		return false
	}

	mv, ok := e.board.Replace(ed.Column, ed.Draft)
	if !ok {
		e.logger.Debug("save ignored: task no longer on board", "task", ed.Task.ID)
		return false
	}
	if mv.Fallback {
		e.logger.Warn("status matches no column; task kept in place",
			"task", mv.TaskID, "status", ed.Draft.Status, "column", mv.To)
	}
	e.applyMove(mv)
	e.session = Viewing{Task: mv.Task, Column: mv.To}
	return true
}

// AssignToCurrentUser makes the current user the owner of the selected
// task. The committed record changes immediately and an open draft gets
// the same owner so the two stay aligned.
func (e *Engine) AssignToCurrentUser() bool {
	t, col, ok := selection(e.session)
	if !ok {
		return false
	}
	assign := func(task *model.Task) {
		task.Owner = e.user.Name
		task.OwnerInitials = e.user.Initials
	}

	updated, ok := e.board.Update(col, t.ID, assign)
	if !ok {
		return false
	}

	switch st := e.session.(type) {
	case Viewing:
		e.session = Viewing{Task: updated, Column: col}
	case Editing:
		draft := st.Draft
		assign(&draft)
		e.session = Editing{Task: updated, Column: col, Draft: draft}
	}
	e.logger.Info("task assigned", "task", t.ID, "owner", e.user.Name)
	return true
}

// === Side data ===

// AddComment appends a comment to the selected task. Blank text is ignored.
func (e *Engine) AddComment(text string) bool {
	key, ok := e.SelectedKey()
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return false
	}
	e.comments.Append(key, model.NewComment(text))
	return true
}

// DeleteComment removes the comment at index for the task in column.
func (e *Engine) DeleteComment(taskID string, column model.ColumnID, index int) bool {
	_, ok := e.comments.RemoveAt(model.KeyFor(taskID, column), index)
	return ok
}

// UploadAttachments appends files to the selected task and returns how
// many were added. Entries without a name are skipped.
func (e *Engine) UploadAttachments(files []model.Attachment) int {
	key, ok := e.SelectedKey()
	if !ok {
		return 0
	}
	valid := make([]model.Attachment, 0, len(files))
	for _, f := range files {
		if strings.TrimSpace(f.Name) == "" {
			continue
		}
		if f.ID == "" {
			f = model.NewAttachment(f.Name, f.Size)
		}
		valid = append(valid, f)
	}
	e.attachments.Append(key, valid...)
	return len(valid)
}

// RemoveAttachment removes the attachment at index for the task in column.
func (e *Engine) RemoveAttachment(taskID string, column model.ColumnID, index int) bool {
	_, ok := e.attachments.RemoveAt(model.KeyFor(taskID, column), index)
	return ok
}

// ToggleLabel adds label to the selected task, or removes it when already
// present (ignoring case).
func (e *Engine) ToggleLabel(label string) bool {
	key, ok := e.SelectedKey()
	label = model.NormalizeLabel(label)
	if !ok || label == "" {
		return false
	}

	current := e.labels.Get(key)
	for i, l := range current {
		if model.SameLabel(l, label) {
			e.labels.RemoveAt(key, i)
			return true
		}
	}
	e.labels.Append(key, label)
	return true
}

// AddCustomLabel adds free-text label to the selected task. Blank labels
// and duplicates (ignoring case) are rejected.
func (e *Engine) AddCustomLabel(label string) bool {
	key, ok := e.SelectedKey()
	label = model.NormalizeLabel(label)
	if !ok || label == "" {
		return false
	}
	if HasLabel(e.labels.Get(key), label) {
		return false
	}
	e.labels.Append(key, label)
	return true
}

// HasLabel reports whether labels contains label, ignoring case.
func HasLabel(labels []string, label string) bool {
	for _, l := range labels {
		if model.SameLabel(l, label) {
			return true
		}
	}
	return false
}

// dedupeLabels drops blank and case-insensitive duplicate labels,
// keeping the first spelling.
func dedupeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = model.NormalizeLabel(l)
		if l == "" || HasLabel(out, l) {
			continue
		}
		out = append(out, l)
	}
	return out
}
