// Package shell derives the active view from the session state and the
// current URL fragment, and remounts controllers as either changes.
package shell

import (
	"context"

	"github.com/avolkov/StaffKeeper/internal/client/controller"
	"github.com/avolkov/StaffKeeper/internal/client/router"
	"github.com/avolkov/StaffKeeper/internal/client/session"
)

// Kind identifies the mounted view.
type Kind int

const (
	// KindAuth is the login/register view, shown whenever no identity
	// is signed in (including while the session is still resolving).
	KindAuth Kind = iota
	// KindList is the employee list view.
	KindList
	// KindDetail is the single-employee detail view.
	KindDetail
)

// View is the currently mounted view with its controller, when any.
type View struct {
	Kind   Kind
	List   *controller.ListController
	Detail *controller.DetailController
}

// Shell owns the fragment state and mounts controllers. It implements
// controller.Navigator so row actions and back buttons route through it.
type Shell struct {
	ctx     context.Context
	session *session.Context
	store   controller.RecordStore
	notify  controller.Notifier

	fragment string
	view     View
	unsub    func()
}

// New constructs the shell and subscribes it to session changes. The
// initial fragment is empty, resolving to the list view once signed in.
func New(ctx context.Context, sess *session.Context, store controller.RecordStore, notify controller.Notifier) *Shell {
	s := &Shell{
		ctx:     ctx,
		session: sess,
		store:   store,
		notify:  notify,
	}
	s.unsub = sess.Subscribe(s.evaluate)
	s.evaluate()
	return s
}

// Navigate sets the fragment and re-derives the active view. It is the
// single entry point for all fragment changes.
func (s *Shell) Navigate(fragment string) {
	s.fragment = fragment
	s.evaluate()
}

// Fragment returns the current fragment.
func (s *Shell) Fragment() string {
	return s.fragment
}

// Active returns the currently mounted view.
func (s *Shell) Active() View {
	return s.view
}

// Close unsubscribes from the session and unmounts the active view.
func (s *Shell) Close() {
	s.unsub()
	s.unmount()
}

// evaluate recomputes the view from (session state, fragment). An
// anonymous or still-unknown session always shows the auth view,
// regardless of fragment.
func (s *Shell) evaluate() {
	if s.session.State() != session.Authenticated {
		if s.view.Kind != KindAuth || s.view.List != nil || s.view.Detail != nil {
			s.unmount()
			s.view = View{Kind: KindAuth}
		}
		return
	}

	route := router.Parse(s.fragment)
	switch route.View {
	case router.ViewDetail:
		// Remount only when the target record changes.
		if s.view.Kind == KindDetail && s.view.Detail.EmployeeID == route.EmployeeID {
			return
		}
		s.unmount()
		detail := controller.NewDetailController(s.store, s.notify, s, route.EmployeeID)
		s.view = View{Kind: KindDetail, Detail: detail}
		detail.Load(s.ctx)
	default:
		if s.view.Kind == KindList {
			return
		}
		s.unmount()
		list := controller.NewListController(s.store, s.notify, s)
		s.view = View{Kind: KindList, List: list}
		list.Load(s.ctx)
	}
}

func (s *Shell) unmount() {
	if s.view.List != nil {
		s.view.List.Close()
	}
	if s.view.Detail != nil {
		s.view.Detail.Close()
	}
	s.view = View{Kind: KindAuth}
}
