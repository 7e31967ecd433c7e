// Package deps classifies conda-style dependency lines and resolves an
// environment description into a platform-filtered requirements manifest.
//
// # Overview
//
// An environment document lists dependencies in two sections:
//
//	dependencies:
//	  - numpy>=1.24.0
//	  - pywin32>=300            # [win]
//	  - pip:requests,httpx
//	pip:
//	  - git+https://github.com/org/lib.git@v1.0.0
//	  - -e ./packages/core
//
// [Classify] turns one raw line into typed [Spec] values. [Resolve] applies
// it to both sections of an [Environment], drops entries restricted to
// another platform, removes byte-identical duplicates and returns a
// [Manifest] whose [Manifest.Render] output is a requirements.txt file.
//
// # Classification
//
// Each line is trimmed and split at its inline comment. The comment may
// carry one platform marker ("# [win]", "# [linux]", "# [osx]"); an
// unknown or repeated marker is an error, never silently ignored. The
// remaining text is classified by prefix, first match wins:
//
//   - "-e " / "--editable ": an [Editable] wrapping a git, URL or local path target
//   - "git+": a [Git] reference with an optional "@ref"
//   - "scheme://": a direct [URL]
//   - "pip:": one [PipPackage] per comma-separated name
//   - anything else: a [Package] (dependencies section) or [PipPackage] (pip section)
//
// Classification failures are returned as *[ClassificationError] carrying
// the offending line. They unwrap to an *errors.Error, so callers can test
// them with errors.Is(err, errors.ErrCodeMalformedGitRef) and friends.
//
// # Resolution
//
// [Resolve] is all-or-nothing: the first classification error aborts the
// run and no partial manifest is returned.
package deps
