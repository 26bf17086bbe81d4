package ui

import "github.com/eliteGoblin/govswitch/internal/domain"

// MultiPresenter fans every event out to several presenters in order.
type MultiPresenter struct {
	presenters []domain.Presenter
}

// NewMultiPresenter skips nil entries.
func NewMultiPresenter(presenters ...domain.Presenter) *MultiPresenter {
	m := &MultiPresenter{}
	for _, p := range presenters {
		if p != nil {
			m.presenters = append(m.presenters, p)
		}
	}
	return m
}

func (m *MultiPresenter) OnGovernorChanged(id domain.GovernorID, displayName, iconID string) {
	for _, p := range m.presenters {
		p.OnGovernorChanged(id, displayName, iconID)
	}
}

func (m *MultiPresenter) OnSwitchSucceeded(displayName string) {
	for _, p := range m.presenters {
		p.OnSwitchSucceeded(displayName)
	}
}

func (m *MultiPresenter) OnSwitchFailed(displayName, diagnostic string) {
	for _, p := range m.presenters {
		p.OnSwitchFailed(displayName, diagnostic)
	}
}

// Ensure MultiPresenter implements domain.Presenter.
var _ domain.Presenter = (*MultiPresenter)(nil)
