package cms

import (
	"strings"
	"time"
)

// Baked-in pages keep the site serving legal and institutional text when no
// content directory is mounted.
var fallbackPages = []Page{
	{
		Kind: KindPage, Slug: "about", Lang: "pt",
		Title:   "Sobre Nós",
		Summary: "Evangelização através da harmonia entre fé e razão.",
		Body: `## Nossa Missão

Catalogar os milagres eucarísticos reconhecidos pela Igreja Católica, documentados pela ciência e preservados pela história.

## Nossa Inspiração: Carlo Acutis

Este projeto segue a obra evangelizadora de Carlo Acutis, que catalogou os milagres eucarísticos do mundo para aproximar fé e razão.`,
		Format:    defaultFormat,
		UpdatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	},
	{
		Kind: KindPage, Slug: "about", Lang: "en",
		Title:   "About Us",
		Summary: "Evangelization through the harmony of faith and reason.",
		Body: `## Our Mission

To catalog the Eucharistic miracles recognized by the Catholic Church, documented by science and preserved by history.

## Our Inspiration: Carlo Acutis

This project follows the evangelizing work of Carlo Acutis, who cataloged the Eucharistic miracles of the world to bring faith and reason together.`,
		Format:    defaultFormat,
		UpdatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	},
	{
		Kind: KindPage, Slug: "about", Lang: "es",
		Title:   "Sobre Nosotros",
		Summary: "Evangelización a través de la armonía entre fe y razón.",
		Body: `## Nuestra Misión

Catalogar los milagros eucarísticos reconocidos por la Iglesia Católica, documentados por la ciencia y preservados por la historia.

## Nuestra Inspiración: Carlo Acutis

Este proyecto sigue la obra evangelizadora de Carlo Acutis, que catalogó los milagros eucarísticos del mundo para acercar fe y razón.`,
		Format:    defaultFormat,
		UpdatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	},
	{
		Kind: KindLegal, Slug: "privacy", Lang: "pt",
		Title:     "Política de Privacidade",
		Summary:   "Como tratamos os dados dos visitantes.",
		Body:      `Este site não coleta dados pessoais além dos necessários para o funcionamento básico: o idioma preferido (cookie) e a sessão administrativa. Mensagens enviadas pelo formulário de contato são encaminhadas ao responsável pelo site e não são compartilhadas com terceiros.`,
		Format:    defaultFormat,
		Version:   "1.0",
		UpdatedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	},
	{
		Kind: KindLegal, Slug: "privacy", Lang: "en",
		Title:     "Privacy Policy",
		Summary:   "How visitor data is handled.",
		Body:      `This site collects no personal data beyond what basic operation requires: the preferred language (cookie) and the administrative session. Messages sent through the contact form are forwarded to the site maintainer and are not shared with third parties.`,
		Format:    defaultFormat,
		Version:   "1.0",
		UpdatedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	},
	{
		Kind: KindLegal, Slug: "terms", Lang: "pt",
		Title:     "Termos de Uso",
		Summary:   "Condições de uso do catálogo.",
		Body:      `O conteúdo deste catálogo é oferecido para fins educacionais e de evangelização. As citações bibliográficas pertencem aos seus autores. O uso do material para fins comerciais não é autorizado.`,
		Format:    defaultFormat,
		Version:   "1.0",
		UpdatedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	},
	{
		Kind: KindLegal, Slug: "terms", Lang: "en",
		Title:     "Terms of Use",
		Summary:   "Conditions for using the catalog.",
		Body:      `The content of this catalog is offered for educational and evangelization purposes. Bibliographic citations belong to their authors. Commercial use of the material is not authorized.`,
		Format:    defaultFormat,
		Version:   "1.0",
		UpdatedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	},
	{
		Kind: KindLegal, Slug: "disclaimer", Lang: "pt",
		Title:     "Aviso Legal",
		Summary:   "Aviso sobre o conteúdo apresentado.",
		Body:      `Os relatos aqui reunidos refletem documentos históricos e pareceres eclesiásticos publicados. Registros marcados como "em investigação" não possuem reconhecimento oficial e são apresentados apenas a título informativo.`,
		Format:    defaultFormat,
		UpdatedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	},
	{
		Kind: KindLegal, Slug: "disclaimer", Lang: "en",
		Title:     "Disclaimer",
		Summary:   "Notice about the presented content.",
		Body:      `The accounts gathered here reflect published historical documents and ecclesiastical verdicts. Records marked "under investigation" carry no official recognition and are presented for information only.`,
		Format:    defaultFormat,
		UpdatedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	},
}

func fallbackPage(kind, slug string, langs []string) (Page, error) {
	for _, lang := range langs {
		for _, p := range fallbackPages {
			if p.Kind == kind && p.Slug == slug && strings.EqualFold(p.Lang, lang) {
				return p, nil
			}
		}
	}
	// any language beats nothing
	for _, p := range fallbackPages {
		if p.Kind == kind && p.Slug == slug {
			return p, nil
		}
	}
	return Page{}, ErrNotFound
}

// LegalSlugs lists the legal pages surfaced in the footer.
func LegalSlugs() []string {
	return []string{"privacy", "terms", "disclaimer"}
}
