// Package undo implements the document's transaction log: named atomic
// groups of reversible actions with undo, redo and mid-transaction rollback
// for interactive previews.
package undo

import "go.uber.org/zap"

// Action is one reversible edit. Perform applies (or re-applies) the change;
// Undo reverses it. Implementations live next to the data they mutate.
type Action interface {
	Perform()
	Undo()
}

type transaction struct {
	name    string
	actions []Action
}

// Log records actions grouped into transactions. Transactions never nest:
// Begin closes whatever is open. An open transaction whose action list is
// still empty when the next Begin arrives is discarded and never reaches
// the history.
//
// Like the rest of the document model the log is single-threaded and does
// no locking.
type Log struct {
	logger  *zap.Logger
	done    []*transaction // undo stack, oldest first
	undone  []*transaction // redo stack, most recently undone last
	current *transaction
}

// NewLog returns an empty transaction log. logger may be nil.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// Begin closes any open transaction (discarding it if empty) and opens a new
// one under the given name.
func (l *Log) Begin(name string) {
	l.closeCurrent()
	l.current = &transaction{name: name}
}

// Record appends a to the open transaction, opening an unnamed one if
// necessary. Recording a new action invalidates the redo stack.
func (l *Log) Record(a Action) {
	if l.current == nil {
		l.current = &transaction{}
	}
	l.undone = nil
	l.current.actions = append(l.current.actions, a)
}

// closeCurrent pushes a non-empty open transaction onto the undo stack and
// drops an empty one.
func (l *Log) closeCurrent() {
	if l.current == nil {
		return
	}
	if len(l.current.actions) > 0 {
		l.done = append(l.done, l.current)
	} else {
		l.logger.Debug("discarding empty transaction", zap.String("name", l.current.name))
	}
	l.current = nil
}

// Undo reverts the most recent transaction, reversing its actions in reverse
// order. An open non-empty transaction is closed and undone first. Returns
// false when there is nothing to undo.
func (l *Log) Undo() bool {
	l.closeCurrent()
	if len(l.done) == 0 {
		l.logger.Debug("undo: history empty")
		return false
	}
	t := l.done[len(l.done)-1]
	l.done = l.done[:len(l.done)-1]
	for i := len(t.actions) - 1; i >= 0; i-- {
		t.actions[i].Undo()
	}
	l.undone = append(l.undone, t)
	return true
}

// Redo re-applies the most recently undone transaction. Returns false when
// there is nothing to redo.
func (l *Log) Redo() bool {
	if len(l.undone) == 0 {
		l.logger.Debug("redo: nothing undone")
		return false
	}
	t := l.undone[len(l.undone)-1]
	l.undone = l.undone[:len(l.undone)-1]
	for _, a := range t.actions {
		a.Perform()
	}
	l.done = append(l.done, t)
	return true
}

// UndoCurrentTransactionOnly reverts the actions recorded in the currently
// open transaction without closing it, leaving it empty and still open.
// Interactive previews use this to reset state between pointer moves so a
// whole gesture collapses into one history entry. Returns false if no open
// transaction has actions.
func (l *Log) UndoCurrentTransactionOnly() bool {
	if l.current == nil || len(l.current.actions) == 0 {
		return false
	}
	for i := len(l.current.actions) - 1; i >= 0; i-- {
		l.current.actions[i].Undo()
	}
	l.current.actions = l.current.actions[:0]
	return true
}

// DiscardIfEmpty drops the open transaction if it recorded nothing. Gesture
// code calls this on release so a no-op drag leaves no stray transaction
// behind.
func (l *Log) DiscardIfEmpty() {
	if l.current != nil && len(l.current.actions) == 0 {
		l.current = nil
	}
}

// Clear wipes all undo and redo state, including any open transaction. Used
// after a full document reload, when prior history no longer refers to the
// live tree.
func (l *Log) Clear() {
	l.done = nil
	l.undone = nil
	l.current = nil
}

// CanUndo reports whether Undo would do anything.
func (l *Log) CanUndo() bool {
	return len(l.done) > 0 || (l.current != nil && len(l.current.actions) > 0)
}

// CanRedo reports whether Redo would do anything.
func (l *Log) CanRedo() bool { return len(l.undone) > 0 }

// NumTransactions returns the number of closed transactions in the undo
// stack. An open transaction is not counted until something closes it.
func (l *Log) NumTransactions() int { return len(l.done) }

// CurrentTransactionName returns the name of the open transaction, or ""
// when none is open.
func (l *Log) CurrentTransactionName() string {
	if l.current == nil {
		return ""
	}
	return l.current.name
}
