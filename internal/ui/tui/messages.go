package tui

import "github.com/DYK-Team/Chan-BH-loop-model/internal/domain"

type paramsLoadedMsg struct {
	params domain.Params
	found  bool
	err    error
}

type runDoneMsg struct {
	run domain.RunArtifact
	id  string
	err error
}
