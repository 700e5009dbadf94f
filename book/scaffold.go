package book

import (
	"log"
	"os"
	"path/filepath"
)

// Scaffold lays down the full project skeleton under root: directories,
// main.tex, a mock exam with one worked problem, a Makefile and a CI
// workflow. Every file write goes through WriteIfMissing, so an existing
// project is never clobbered.
func Scaffold(root string, logger *log.Logger) error {
	for _, dir := range []string{
		"figures",
		filepath.Join("problems", "exams"),
		"exams",
	} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return err
		}
	}
	if err := WriteIfMissing(filepath.Join(root, "main.tex"), mainTex, logger); err != nil {
		return err
	}
	if err := WriteIfMissing(filepath.Join(root, "problems", "exams", "exam1", "ex1_prob01.tex"), mockProblemTex, logger); err != nil {
		return err
	}
	if err := WriteIfMissing(filepath.Join(root, "exams", "exam1.tex"), mockExamTex, logger); err != nil {
		return err
	}
	if err := WriteIfMissing(filepath.Join(root, "Makefile"), makefile, logger); err != nil {
		return err
	}
	return WriteIfMissing(filepath.Join(root, ".github", "workflows", "latex.yml"), latexWorkflow, logger)
}

const mainTex = `%========================================
%  Classical Math Textbook Template
%========================================
\documentclass[12pt,oneside]{book}

%----------------------------------------
% Encoding, language, fonts
%----------------------------------------
\usepackage[utf8]{inputenc}
\usepackage[T1]{fontenc}
\usepackage[english]{babel}
\usepackage{lmodern}
\usepackage{microtype}

%----------------------------------------
% Page layout
%----------------------------------------
\usepackage{geometry}
\geometry{
  a4paper,
  margin=1in
}

\usepackage{setspace}
\onehalfspacing

%----------------------------------------
% Math packages
%----------------------------------------
\usepackage{amsmath,amssymb,amsthm}
\usepackage{mathtools}

\numberwithin{equation}{chapter}

% Common shortcuts
\newcommand{\R}{\mathbb{R}}
\newcommand{\C}{\mathbb{C}}
\newcommand{\N}{\mathbb{N}}
\newcommand{\Z}{\mathbb{Z}}
\newcommand{\dd}{\,\mathrm{d}}
\newcommand{\e}{\mathrm{e}}
\newcommand{\ii}{\mathrm{i}}

%----------------------------------------
% Theorem-like environments
%----------------------------------------
\theoremstyle{plain}
\newtheorem{theorem}{Theorem}[chapter]
\newtheorem{lemma}[theorem]{Lemma}
\newtheorem{proposition}[theorem]{Proposition}
\newtheorem{corollary}[theorem]{Corollary}

\theoremstyle{definition}
\newtheorem{definition}[theorem]{Definition}
\newtheorem{example}[theorem]{Example}

\theoremstyle{remark}
\newtheorem{remark}[theorem]{Remark}

% Problems embedded in the text (worked examples)
\theoremstyle{definition}
\newtheorem{problem}{Problem}[chapter]

% Exercises at the end of sections, numbered by section
\newtheorem{exercise}{Exercise}[section]

% Classical "Solution." environment
\newenvironment{solution}{%
  \begin{proof}[Solution]%
}{%
  \end{proof}%
}

%----------------------------------------
% Graphics, lists, hyperlinks
%----------------------------------------
\usepackage{graphicx}
\graphicspath{{figures/}}

\usepackage{enumitem}
\setlist{nosep}

\usepackage[hidelinks]{hyperref}

%----------------------------------------
% Title info
%----------------------------------------
\title{%
  \Huge Methods in Applied Mathematics\\[0.5em]
  \Large A Personal Textbook and Problem Notebook
}
\author{Your Name}
\date{\today}

%========================================
% Document
%========================================
\begin{document}

\frontmatter
\maketitle
\tableofcontents

\chapter*{Preface}

This book is intended as both a classical textbook and a personal
notebook for studying mathematical methods at the graduate level.
It is organized in two complementary ways:

\begin{itemize}
  \item \emph{By topic}, following the core course outline
        (complex analysis, Fourier analysis, differential equations).
  \item \emph{By exam and problem}, which you can develop later
        in separate chapters or appendices.
\end{itemize}

\mainmatter

%========================================
% Part I: Applied Analysis
%========================================
\part{Applied Analysis}

\include{themes/complex_analysis}
\include{themes/fourier_analysis}

%========================================
% Part II: Differential Equations
%========================================
\part{Differential Equations}

\include{themes/ode}
\include{themes/pde}

%========================================
% Back matter
%========================================
\backmatter

\chapter*{Summary of Topics}

Here you can keep a running list of topics, theorems, and page
references for exam review, plus a mapping between exam problems
and the thematic sections where they naturally belong.

\end{document}
`

const mockProblemTex = `% problems/exams/exam1/ex1_prob01.tex
\begin{problem}[Exam 1, Problem 1: Warm-up ODE]\label{prob:ex1-1-warmup-ode}
Solve the initial value problem
\[
  y'(t) = -2 y(t), \qquad y(0) = 1.
\]
\end{problem}

\begin{solution}
This is a linear first-order ODE with constant coefficients.
We can solve by inspection or separation of variables.

Separating variables,
\[
  \frac{y'}{y} = -2
\]
and integrating gives
\[
  \ln|y(t)| = -2t + C.
\]
Exponentiating,
\[
  y(t) = C_1 e^{-2t}.
\]
Imposing the initial condition $y(0)=1$ yields $C_1 = 1$, so
\[
  y(t) = e^{-2t}.
\]
\end{solution}
`

const mockExamTex = `% exams/exam1.tex
\chapter{Exam 1 – Sample Problems}

\section*{Original Exam Statement}
% TODO: paste or summarize the original exam statement here.

\section{Solved Problems}
% Each problem is stored canonically under problems/exams/exam1.
\input{problems/exams/exam1/ex1_prob01}
`

const makefile = `MAIN=main
LATEX=pdflatex

.PHONY: all pdf clean

all: pdf

pdf:
	$(LATEX) $(MAIN).tex
	$(LATEX) $(MAIN).tex

clean:
	rm -f $(MAIN).aux $(MAIN).log $(MAIN).out $(MAIN).toc \
	       $(MAIN).bbl $(MAIN).blg $(MAIN).lof $(MAIN).lot
`

const latexWorkflow = `name: Build LaTeX

on:
  push:
    branches: [ main, master ]
  pull_request:

jobs:
  build:
    runs-on: ubuntu-latest

    steps:
      - name: Checkout repository
        uses: actions/checkout@v4

      - name: Install TeX Live
        run: |
          sudo apt-get update
          sudo apt-get install -y \
            texlive-latex-recommended \
            texlive-latex-extra \
            texlive-fonts-recommended

      - name: Build main.pdf
        run: |
          pdflatex main.tex
          pdflatex main.tex

      - name: Upload PDF artifact
        uses: actions/upload-artifact@v4
        with:
          name: methods-book-pdf
          path: main.pdf
`
